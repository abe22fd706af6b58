package game

import "fmt"

// unmarshalName returns the candidate whose String form equals text
func unmarshalName[T fmt.Stringer](text []byte, kind string, candidates ...T) (T, error) {
	for _, c := range candidates {
		if c.String() == string(text) {
			return c, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, text)
}

// UnmarshalText decodes a card state by name
func (s *CardState) UnmarshalText(text []byte) (err error) {
	*s, err = unmarshalName(text, "card state", Hidden, Revealed, Matched)
	return err
}

// UnmarshalText decodes a phase by name
func (p *Phase) UnmarshalText(text []byte) (err error) {
	*p, err = unmarshalName(text, "phase", PhaseIdle, PhaseRunning, PhaseResolving, PhaseComplete)
	return err
}

// UnmarshalText decodes a flip status by name
func (s *FlipStatus) UnmarshalText(text []byte) (err error) {
	*s, err = unmarshalName(text, "flip status", Accepted, Locked, InvalidCard, GameOver)
	return err
}

// UnmarshalText decodes a rating by label
func (r *Rating) UnmarshalText(text []byte) (err error) {
	*r, err = unmarshalName(text, "rating", RatingPerfect, RatingGreat, RatingGood, RatingKeepPracticing)
	return err
}
