package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testAuction(startsAt time.Time, durationMins int) Auction {
	return Auction{
		Slug:         "test-item",
		Title:        "Test Item",
		StartsAt:     startsAt,
		DurationMins: durationMins,
		StartingBid:  10,
		MinIncrement: 1,
		MaxIncrement: 1000,
		Currency:     "$",
	}
}

func TestAuction_Status(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := testAuction(start, 30)
	close := start.Add(30 * time.Minute)

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"BeforeStart", start.Add(-time.Second), StatusUpcoming},
		{"AtStart", start, StatusLive},
		{"MidAuction", start.Add(15 * time.Minute), StatusLive},
		{"AtClose", close, StatusLive},
		{"AfterClose", close.Add(time.Second), StatusEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Status(tt.now))
		})
	}
}

func TestAuction_StatusMonotonic(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := testAuction(start, 30)

	rank := map[Status]int{StatusUpcoming: 0, StatusLive: 1, StatusEnded: 2}

	prev := StatusUpcoming
	for now := start.Add(-time.Minute); now.Before(start.Add(40 * time.Minute)); now = now.Add(10 * time.Second) {
		status := a.Status(now)
		assert.GreaterOrEqual(t, rank[status], rank[prev], "status regressed at %v", now)
		prev = status
	}
}

func TestAuction_TimeRemaining(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := testAuction(start, 30)

	before := a.TimeRemaining(start.Add(-10 * time.Minute))
	assert.Equal(t, 10*time.Minute, before.UntilStart)
	assert.Equal(t, 40*time.Minute, before.UntilEnd)

	during := a.TimeRemaining(start.Add(10 * time.Minute))
	assert.Equal(t, time.Duration(0), during.UntilStart)
	assert.Equal(t, 20*time.Minute, during.UntilEnd)

	after := a.TimeRemaining(start.Add(time.Hour))
	assert.Equal(t, time.Duration(0), after.UntilStart)
	assert.Equal(t, time.Duration(0), after.UntilEnd)
}

func TestAuction_ClosesAtTracksDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := testAuction(start, 30)
	assert.Equal(t, start.Add(30*time.Minute), a.ClosesAt())

	// Anti-sniping extension rewrites the duration.
	a.DurationMins += 2
	assert.Equal(t, start.Add(32*time.Minute), a.ClosesAt())
}

func TestAuction_Validate(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*Auction)
		wantErr bool
	}{
		{"Valid", func(a *Auction) {}, false},
		{"EmptySlug", func(a *Auction) { a.Slug = "" }, true},
		{"UppercaseSlug", func(a *Auction) { a.Slug = "Test-Item" }, true},
		{"LeadingHyphen", func(a *Auction) { a.Slug = "-test" }, true},
		{"ZeroDuration", func(a *Auction) { a.DurationMins = 0 }, true},
		{"NegativeStartingBid", func(a *Auction) { a.StartingBid = -1 }, true},
		{"MinAboveMax", func(a *Auction) { a.MinIncrement = 10; a.MaxIncrement = 5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAuction(start, 30)
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Cool Item", "my-cool-item"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"Already-Fine", "already-fine"},
		{"symbols!@#here", "symbols-here"},
		{"--edges--", "edges"},
		{"MiXeD123Case", "mixed123case"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("my-cool-item"))
	assert.True(t, ValidSlug("item42"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("-leading"))
	assert.False(t, ValidSlug("trailing-"))
	assert.False(t, ValidSlug("Has-Upper"))
	assert.False(t, ValidSlug("double--hyphen"))
}
