package game

import "fmt"

// Rating is the qualitative score of a finished session
type Rating int

const (
	RatingPerfect Rating = iota
	RatingGreat
	RatingGood
	RatingKeepPracticing
)

// String returns the rating label
func (r Rating) String() string {
	switch r {
	case RatingPerfect:
		return "Perfect!"
	case RatingGreat:
		return "Great!"
	case RatingGood:
		return "Good!"
	case RatingKeepPracticing:
		return "Keep Practicing!"
	default:
		return "unknown"
	}
}

// Stars returns the number of stars awarded for the rating
func (r Rating) Stars() int {
	switch r {
	case RatingPerfect:
		return 3
	case RatingGreat:
		return 2
	case RatingGood:
		return 1
	default:
		return 0
	}
}

// MarshalText encodes the rating by label
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// RateMoves scores a finished session by the ratio of moves to cards on the board.
// Tiers are checked in ascending order with inclusive upper bounds.
func RateMoves(moves, pairs int) Rating {
	ratio := float64(moves) / float64(pairs*2)
	switch {
	case ratio <= 1.5:
		return RatingPerfect
	case ratio <= 2.0:
		return RatingGreat
	case ratio <= 2.5:
		return RatingGood
	default:
		return RatingKeepPracticing
	}
}

// FormatElapsed renders seconds as mm:ss
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
