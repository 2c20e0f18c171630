package progress

import "github.com/ashureev/boj-daily/internal/domain"

// Subject identifies whose result this is.
type Subject struct {
	UserID string
	Handle string
	Name   string
}

// Result is one user's outcome for one evaluation cycle.
type Result struct {
	Subject

	Delta        int
	SolvedToday  bool
	StreakAfter  int
	TotalSolved  int
	Tier         int
	LookupFailed bool

	// Next is the streak state the caller should persist on success.
	Next StreakState
}

// Evaluate compares a stored solved count against a fresh one.
//
// A decrease in the remote count is not trusted and reports a delta of 0.
func Evaluate(lastSolved, currentSolved int, state StreakState, today domain.Date) Result {
	delta := currentSolved - lastSolved
	if delta < 0 {
		delta = 0
	}
	solved := delta > 0

	next := Advance(state, solved, today)
	streak := next.Current
	if !solved {
		streak = Reported(state, today)
	}

	total := currentSolved
	if total < lastSolved {
		total = lastSolved
	}

	return Result{
		Delta:       delta,
		SolvedToday: solved,
		StreakAfter: streak,
		TotalSolved: total,
		Next:        next,
	}
}

// Failed builds the result for a user whose remote lookup did not succeed.
// Next carries the stored state unchanged.
func Failed(lastSolved int, state StreakState, today domain.Date) Result {
	return Result{
		StreakAfter:  Reported(state, today),
		TotalSolved:  lastSolved,
		LookupFailed: true,
		Next:         state,
	}
}
