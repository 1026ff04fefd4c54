// Package display renders stored events as the sentences shown by the
// dashboard.
package display

import (
	"fmt"

	"github.com/spidyshivam/webhook-repo/internal/domain"
)

// Item is one entry of the dashboard feed.
type Item struct {
	Message string `json:"message"`
}

// FormatTimestamp renders raw as "1st April 2021 - 9:30 PM UTC". Values that
// do not parse are returned unchanged.
func FormatTimestamp(raw string) string {
	t, ok := domain.ParseTimestamp(raw)
	if !ok {
		return raw
	}
	t = t.UTC()
	return fmt.Sprintf("%d%s %s UTC", t.Day(), Ordinal(t.Day()), t.Format("January 2006 - 3:04 PM"))
}

// Ordinal returns the English suffix for a day of the month.
func Ordinal(day int) string {
	switch day % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// Message renders one stored event as a sentence.
func Message(ev domain.StoredEvent) string {
	when := FormatTimestamp(ev.Timestamp)
	from := domain.Unknown
	if ev.FromBranch != nil {
		from = *ev.FromBranch
	}

	switch ev.Action {
	case domain.ActionPush:
		return fmt.Sprintf("%s pushed to %s on %s", ev.Author, ev.ToBranch, when)
	case domain.ActionPullRequest:
		return fmt.Sprintf("%s submitted a pull request from %s to %s on %s", ev.Author, from, ev.ToBranch, when)
	case domain.ActionMerge:
		return fmt.Sprintf("%s merged branch %s to %s on %s", ev.Author, from, ev.ToBranch, when)
	}
	return "Unknown event"
}

// Feed converts events to feed items, keeping their order.
func Feed(events []domain.StoredEvent) []Item {
	items := make([]Item, 0, len(events))
	for _, ev := range events {
		items = append(items, Item{Message: Message(ev)})
	}
	return items
}
