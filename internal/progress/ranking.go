package progress

import (
	"fmt"
	"sort"
)

var medals = [...]string{"🥇", "🥈", "🥉"}

// Entry is a ranked result with its decoration.
type Entry struct {
	Position int
	Medal    bool
	Label    string
	Result
}

// Daily is the daily-delta ranking plus its summary counts.
type Daily struct {
	Entries      []Entry
	SuccessCount int
	Total        int
}

// RankDaily orders results by delta, highest first. Equal deltas keep their
// input order. Failed lookups follow every evaluated user, in input order.
// Medals go to the top three only when their delta is positive.
func RankDaily(results []Result) Daily {
	evaluated := make([]Result, 0, len(results))
	var failed []Result
	success := 0
	for _, r := range results {
		if r.LookupFailed {
			failed = append(failed, r)
			continue
		}
		if r.SolvedToday {
			success++
		}
		evaluated = append(evaluated, r)
	}

	sort.SliceStable(evaluated, func(i, j int) bool {
		return evaluated[i].Delta > evaluated[j].Delta
	})

	ordered := append(evaluated, failed...)
	entries := make([]Entry, len(ordered))
	for i, r := range ordered {
		entries[i] = decorate(i+1, r, r.Delta > 0)
	}

	return Daily{
		Entries:      entries,
		SuccessCount: success,
		Total:        len(results),
	}
}

// RankAllTime orders results by total solved, highest first, with medals for
// the top three. Failed lookups are left out entirely.
func RankAllTime(results []Result) []Entry {
	scored := make([]Result, 0, len(results))
	for _, r := range results {
		if !r.LookupFailed {
			scored = append(scored, r)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalSolved > scored[j].TotalSolved
	})

	entries := make([]Entry, len(scored))
	for i, r := range scored {
		entries[i] = decorate(i+1, r, true)
	}
	return entries
}

func decorate(pos int, r Result, medalEligible bool) Entry {
	e := Entry{Position: pos, Result: r}
	if medalEligible && pos <= len(medals) {
		e.Medal = true
		e.Label = medals[pos-1]
		return e
	}
	e.Label = Ordinal(pos)
	return e
}

// Ordinal renders a position as 1st, 2nd, 3rd, 4th, 11th, 21st...
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
