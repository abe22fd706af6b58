// Package game implements the state engine of a memory-matching (concentration) game.
//
// The main type is GameEngine, which owns one session at a time: the shuffled board,
// the move, pair and elapsed-time counters, and the flip state machine.
//
// # Basic Usage
//
//	engine := game.NewGameEngine(game.WithRenderer(r))
//	d, _ := game.LookupDifficulty("easy")
//	if err := engine.StartSession(d.Config()); err != nil {
//	    // *game.ConfigError
//	}
//	status := engine.Flip(0) // game.Accepted
//
// # Phases
//
//	Idle --flip--> Running --second pending flip--> Resolving --settle--> Running | Complete
//
// While Resolving, flips return Locked. The settle delays run on the engine's clock:
// a match settles after Timing.MatchSettle; a mismatch is signalled after
// Timing.MismatchCue and the cards are hidden Timing.MismatchSettle later.
//
// # Deterministic Testing
//
// Inject a seeded source and a mock clock:
//
//	clock := quartz.NewMock(t)
//	engine := game.NewGameEngine(
//	    game.WithClock(clock),
//	    game.WithRandom(randutil.New(42)),
//	)
//
// Every deferred callback captures the session generation and does nothing once a
// newer session has been started.
package game
