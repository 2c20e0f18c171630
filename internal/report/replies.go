package report

import (
	"fmt"

	"github.com/ashureev/boj-daily/internal/tier"
	"github.com/ashureev/boj-daily/internal/tracker"
)

// Canned chat replies.
const (
	MsgHandleRequired = "Please enter your BOJ handle.\nUsage: register <handle>"
	MsgNoUsers        = "No one is registered yet.\nRegister first with 'register <handle>'!"
	MsgNotRegistered  = "You are not registered yet.\nRegister first with 'register <handle>'!"
	MsgRetry          = "Something went wrong. Please try again."
	MsgUnregistered   = "You have been unregistered."
)

// HandleNotFound is the reply for a handle the judge platform does not know.
func HandleNotFound(handle string) string {
	return fmt.Sprintf("Could not find '%s'.\nPlease check your BOJ handle.", handle)
}

// Registration renders the reply to a registration.
func Registration(reg *tracker.Registration) string {
	var headline string
	switch reg.Status {
	case tracker.Unchanged:
		headline = fmt.Sprintf("Already registered as '%s'!", reg.User.Handle)
	case tracker.Changed:
		headline = fmt.Sprintf("Changed your BOJ handle from '%s' to '%s'!", reg.PreviousHandle, reg.User.Handle)
	default:
		headline = "Registration complete!"
	}
	return fmt.Sprintf("%s\n%s\n👤 BOJ handle: %s\n🏆 Tier: %s\n✅ Solved: %d",
		headline, divider, reg.User.Handle, tier.Name(reg.Stats.Tier), reg.Stats.SolvedCount)
}

// Profile renders a caller's own status.
func Profile(p *tracker.Profile) string {
	tierName := tier.Name(p.Stats.Tier)
	if !p.Live {
		tierName = "unavailable"
	}
	last := "never"
	if p.User.LastSolvedDate != nil {
		last = p.User.LastSolvedDate.String()
	}
	return fmt.Sprintf("👤 %s\n%s\n🏆 Tier: %s\n✅ Solved: %d\n🔥 Streak: %d\n📅 Last solved: %s",
		p.User.Handle, divider, tierName, p.Stats.SolvedCount, p.Streak, last)
}
