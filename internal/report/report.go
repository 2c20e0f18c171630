// Package report renders cycle results and replies as chat text.
package report

import (
	"fmt"
	"strings"

	"github.com/ashureev/boj-daily/internal/domain"
	"github.com/ashureev/boj-daily/internal/progress"
	"github.com/ashureev/boj-daily/internal/tier"
)

const divider = "━━━━━━━━━━━━━━━"

// Style selects the markup of a channel.
type Style struct {
	// Markdown bolds names and headers (Discord). Plain text uses dividers.
	Markdown bool
	// ShowName prints "Name (handle)" instead of the handle alone.
	ShowName bool
}

var (
	// Discord is the group-channel style used by the batch job.
	Discord = Style{Markdown: true, ShowName: true}
	// Kakao is the plain style chat replies are shown in verbatim.
	Kakao = Style{}
)

func (s Style) bold(text string) string {
	if s.Markdown {
		return "**" + text + "**"
	}
	return text
}

func (s Style) who(r progress.Result) string {
	if s.ShowName && r.Name != "" && r.Name != r.Handle {
		return fmt.Sprintf("%s (%s)", s.bold(r.Name), r.Handle)
	}
	return s.bold(r.Handle)
}

func (s Style) frame(header string, lines []string, footer string) string {
	var b strings.Builder
	b.WriteString(header)
	if s.Markdown {
		b.WriteString("\n\n")
	} else {
		b.WriteString("\n" + divider + "\n")
	}
	b.WriteString(strings.Join(lines, "\n"))
	if footer != "" {
		if s.Markdown {
			b.WriteString("\n\n")
		} else {
			b.WriteString("\n" + divider + "\n")
		}
		b.WriteString(footer)
	}
	return b.String()
}

// DailyStatus renders the daily ranking with its completion tally.
func DailyStatus(date domain.Date, daily progress.Daily, s Style) string {
	lines := make([]string, 0, len(daily.Entries))
	for _, e := range daily.Entries {
		lines = append(lines, dailyLine(e, s))
	}

	header := "📊 " + s.bold(date.String()+" daily check-in")
	footer := "🎯 " + s.bold(fmt.Sprintf("%d/%d", daily.SuccessCount, daily.Total)) + " completed!"
	return s.frame(header, lines, footer)
}

func dailyLine(e progress.Entry, s Style) string {
	var verdict string
	switch {
	case e.LookupFailed:
		verdict = "⚠️ lookup failed"
	case e.SolvedToday:
		verdict = fmt.Sprintf("✅ +%d", e.Delta)
	default:
		verdict = "❌ 0"
	}
	line := fmt.Sprintf("%s %s: %s", e.Label, s.who(e.Result), verdict)
	if !e.LookupFailed && e.StreakAfter > 0 {
		line += fmt.Sprintf(" 🔥%d", e.StreakAfter)
	}
	return line
}

// AllTime renders the cumulative ranking. Users whose lookup failed are
// already absent from entries.
func AllTime(date domain.Date, entries []progress.Entry, s Style) string {
	header := "🏆 " + s.bold(date.String()+" all-time ranking")
	if len(entries) == 0 {
		return s.frame(header, []string{"No one could be ranked right now."}, "")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %s: %d solved (%s)",
			e.Label, s.who(e.Result), e.TotalSolved, tier.Name(e.Tier)))
	}
	return s.frame(header, lines, "")
}

// UserList renders registered users with their stored counts and the
// streak as reported on today.
func UserList(users []*domain.User, today domain.Date) string {
	if len(users) == 0 {
		return "No registered users."
	}
	lines := make([]string, 0, len(users)+1)
	lines = append(lines, "📋 Registered users:")
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("- %s (%s): %d solved, streak %d", u.Name(), u.Handle, u.SolvedCount,
			progress.Reported(progress.StreakOf(u), today)))
	}
	return strings.Join(lines, "\n")
}
