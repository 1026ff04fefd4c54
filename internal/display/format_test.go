package display

import (
	"testing"

	"github.com/spidyshivam/webhook-repo/internal/domain"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2021-04-01T21:30:00Z", "1st April 2021 - 9:30 PM UTC"},
		{"2021-04-02T12:00:00+00:00", "2nd April 2021 - 12:00 PM UTC"},
		{"2021-04-03T00:05:00Z", "3rd April 2021 - 12:05 AM UTC"},
		{"2021-04-11T08:00:00Z", "11th April 2021 - 8:00 AM UTC"},
		{"2021-04-12T08:00:00Z", "12th April 2021 - 8:00 AM UTC"},
		{"2021-04-13T08:00:00Z", "13th April 2021 - 8:00 AM UTC"},
		{"2021-04-21T08:00:00Z", "21st April 2021 - 8:00 AM UTC"},
		{"2021-04-22T08:00:00Z", "22nd April 2021 - 8:00 AM UTC"},
		{"2021-04-23T08:00:00Z", "23rd April 2021 - 8:00 AM UTC"},
		{"2021-04-24T08:00:00Z", "24th April 2021 - 8:00 AM UTC"},
		{"2021-03-31T08:00:00Z", "31st March 2021 - 8:00 AM UTC"},
		// offsets are normalized to UTC, crossing the date line when needed
		{"2021-04-02T03:30:00+05:30", "1st April 2021 - 10:00 PM UTC"},
		{"2021-04-01T21:30:00-04:00", "2nd April 2021 - 1:30 AM UTC"},
		{"2021-04-01T21:30:00.123456+00:00", "1st April 2021 - 9:30 PM UTC"},
		{"2021-04-01T21:30:00", "1st April 2021 - 9:30 PM UTC"},
		{"2021-04-01 21:30:00+00:00", "1st April 2021 - 9:30 PM UTC"},
		// unparseable values come back unchanged
		{"yesterday", "yesterday"},
		{"", ""},
		{"2021-13-01T00:00:00Z", "2021-13-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := FormatTimestamp(tt.raw); got != tt.want {
				t.Errorf("FormatTimestamp(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestOrdinal(t *testing.T) {
	want := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 10: "th",
		11: "th", 12: "th", 13: "th", 14: "th",
		20: "th", 21: "st", 22: "nd", 23: "rd", 24: "th", 30: "th", 31: "st",
	}
	for day, suffix := range want {
		if got := Ordinal(day); got != suffix {
			t.Errorf("Ordinal(%d) = %q, want %q", day, got, suffix)
		}
	}
}

func branch(s string) *string { return &s }

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		ev   domain.CanonicalEvent
		want string
	}{
		{
			name: "push",
			ev: domain.CanonicalEvent{
				Author: "bob", Action: domain.ActionPush, ToBranch: "main",
				Timestamp: "2021-04-01T21:30:00Z",
			},
			want: "bob pushed to main on 1st April 2021 - 9:30 PM UTC",
		},
		{
			name: "pull request",
			ev: domain.CanonicalEvent{
				Author: "alice", Action: domain.ActionPullRequest, FromBranch: branch("feature"),
				ToBranch: "main", Timestamp: "2021-04-01T09:00:00Z",
			},
			want: "alice submitted a pull request from feature to main on 1st April 2021 - 9:00 AM UTC",
		},
		{
			name: "merge",
			ev: domain.CanonicalEvent{
				Author: "carol", Action: domain.ActionMerge, FromBranch: branch("dev"),
				ToBranch: "master", Timestamp: "2021-04-02T12:00:00+00:00",
			},
			want: "carol merged branch dev to master on 2nd April 2021 - 12:00 PM UTC",
		},
		{
			name: "degraded timestamp",
			ev: domain.CanonicalEvent{
				Author: "bob", Action: domain.ActionPush, ToBranch: "main", Timestamp: "garbage",
			},
			want: "bob pushed to main on garbage",
		},
		{
			name: "unknown action",
			ev:   domain.CanonicalEvent{Action: "DELETE"},
			want: "Unknown event",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := domain.StoredEvent{ID: "1", CanonicalEvent: tt.ev}
			got := Message(stored)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if again := Message(stored); again != got {
				t.Errorf("formatting is not stable: %q vs %q", got, again)
			}
		})
	}
}

func TestFeed_PreservesOrder(t *testing.T) {
	events := []domain.StoredEvent{
		{ID: "2", CanonicalEvent: domain.CanonicalEvent{Author: "b", Action: domain.ActionPush, ToBranch: "main", Timestamp: "2021-04-02T00:00:00Z"}},
		{ID: "1", CanonicalEvent: domain.CanonicalEvent{Author: "a", Action: domain.ActionPush, ToBranch: "main", Timestamp: "2021-04-01T00:00:00Z"}},
	}

	items := Feed(events)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Message != "b pushed to main on 2nd April 2021 - 12:00 AM UTC" {
		t.Errorf("unexpected first item %q", items[0].Message)
	}
	if items[1].Message != "a pushed to main on 1st April 2021 - 12:00 AM UTC" {
		t.Errorf("unexpected second item %q", items[1].Message)
	}
}

func TestFeed_EmptyIsNotNil(t *testing.T) {
	if items := Feed(nil); items == nil {
		t.Error("Feed(nil) should return an empty slice so it encodes as []")
	}
}
