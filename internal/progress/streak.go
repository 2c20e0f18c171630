// Package progress computes daily solve verdicts, consecutive-day streaks and
// rankings over a tracked population. Everything here is pure: callers own
// fetching remote stats and persisting the returned state.
package progress

import (
	"fmt"
	"strings"

	"github.com/ashureev/boj-daily/internal/domain"
)

// StreakState is the persisted part of a streak.
type StreakState struct {
	Current    int
	LastSolved *domain.Date
}

// StreakOf extracts the streak state stored on a user record.
func StreakOf(u *domain.User) StreakState {
	s := StreakState{Current: u.CurrentStreak}
	if u.LastSolvedDate != nil {
		d := *u.LastSolvedDate
		s.LastSolved = &d
	}
	return s
}

// Apply writes the streak state back onto a user record.
func (s StreakState) Apply(u *domain.User) {
	u.CurrentStreak = s.Current
	u.LastSolvedDate = nil
	if s.LastSolved != nil {
		d := *s.LastSolved
		u.LastSolvedDate = &d
	}
}

// gap returns days elapsed from the last solved date to today.
func (s StreakState) gap(today domain.Date) (int, bool) {
	if s.LastSolved == nil {
		return 0, false
	}
	return s.LastSolved.DaysUntil(today), true
}

// Advance applies one assessment of today's activity.
//
// A non-solving day never changes the state. A solving day starts a streak of
// 1, extends it when the last solve was yesterday, keeps it when today was
// already counted, and resets it to 1 after a gap of two or more days.
func Advance(s StreakState, solvedToday bool, today domain.Date) StreakState {
	if !solvedToday {
		return s
	}

	gap, ok := s.gap(today)
	switch {
	case !ok:
		return StreakState{Current: 1, LastSolved: &today}
	case gap <= 0:
		// Already counted today. A future date from clock skew is left alone.
		return s
	case gap == 1:
		return StreakState{Current: s.Current + 1, LastSolved: &today}
	default:
		return StreakState{Current: 1, LastSolved: &today}
	}
}

// Reported returns the streak value to display today. A streak whose last
// solve is older than yesterday has lapsed and reports 0, whatever is stored.
func Reported(s StreakState, today domain.Date) int {
	gap, ok := s.gap(today)
	if !ok || gap > 1 {
		return 0
	}
	return s.Current
}

// LapsePolicy decides whether a lapsed streak is written back as 0.
type LapsePolicy string

const (
	// LapseLazy leaves the stored streak untouched on non-solving days. The
	// next solving day recomputes it from the adjacency rule.
	LapseLazy LapsePolicy = "lazy"
	// LapseEager rewrites the stored streak to 0 in the cycle it lapses.
	LapseEager LapsePolicy = "eager"
)

// ParseLapsePolicy parses a policy name; empty selects LapseLazy.
func ParseLapsePolicy(raw string) (LapsePolicy, error) {
	switch LapsePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", LapseLazy:
		return LapseLazy, nil
	case LapseEager:
		return LapseEager, nil
	default:
		return "", fmt.Errorf("unknown lapse policy %q", raw)
	}
}

// Persist returns the state to store after an assessment on today.
func (p LapsePolicy) Persist(s StreakState, today domain.Date) StreakState {
	if p != LapseEager || s.Current == 0 || Reported(s, today) != 0 {
		return s
	}
	// Only the counter collapses; the last solved date is kept.
	return StreakState{Current: 0, LastSolved: s.LastSolved}
}
