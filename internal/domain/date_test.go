package domain

import (
	"testing"
	"time"
)

func TestDateAddDaysCrossesMonth(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}

	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", got)
	}
	if got := d.AddDays(-28).String(); got != "2024-01-31" {
		t.Fatalf("expected 2024-01-31, got %s", got)
	}
}

func TestDateDaysUntil(t *testing.T) {
	d := Date{Year: 2024, Month: time.December, Day: 31}
	if got := d.DaysUntil(Date{Year: 2025, Month: time.January, Day: 3}); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := d.DaysUntil(d); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	at := time.Date(2024, time.May, 1, 16, 30, 0, 0, time.UTC) // 01:30 next day in KST

	if got := DateOf(at.In(seoul)).String(); got != "2024-05-02" {
		t.Fatalf("expected 2024-05-02, got %s", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatal("expected error for malformed date")
	}
	d, err := ParseDate("2023-07-09")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Month != time.July || d.Day != 9 {
		t.Fatalf("unexpected date: %+v", d)
	}
}

func TestUserValidate(t *testing.T) {
	u := &User{ID: "k1", Handle: "alice", CurrentStreak: 2}
	if err := u.Validate(); err == nil {
		t.Fatal("expected error for streak without last solved date")
	}

	u.LastSolvedDate = &Date{Year: 2024, Month: time.May, Day: 1}
	if err := u.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u.SolvedCount = -1
	if err := u.Validate(); err == nil {
		t.Fatal("expected error for negative solved count")
	}
}

func TestUserTouchIsMonotonic(t *testing.T) {
	later := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	u := &User{LastCheckedAt: later}

	u.Touch(later.Add(-time.Hour))
	if !u.LastCheckedAt.Equal(later) {
		t.Fatalf("LastCheckedAt moved backwards: %v", u.LastCheckedAt)
	}
	u.Touch(later.Add(time.Hour))
	if !u.LastCheckedAt.Equal(later.Add(time.Hour)) {
		t.Fatalf("LastCheckedAt not advanced: %v", u.LastCheckedAt)
	}
}
