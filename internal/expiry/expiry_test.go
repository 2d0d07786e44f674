package expiry

import (
	"testing"
	"time"

	"famick/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		name   string
		expiry *time.Time
		want   Bucket
	}{
		{"no expiry", nil, BucketNone},
		{"yesterday", datePtr(2025, 3, 14), BucketExpired},
		{"long expired", datePtr(2024, 12, 1), BucketExpired},
		{"today", datePtr(2025, 3, 15), BucketToday},
		{"today late evening still today", func() *time.Time {
			t := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
			return &t
		}(), BucketToday},
		{"tomorrow", datePtr(2025, 3, 16), BucketTomorrow},
		{"two days", datePtr(2025, 3, 17), BucketWithinWeek},
		{"exactly seven days", datePtr(2025, 3, 22), BucketWithinWeek},
		{"eight days", datePtr(2025, 3, 23), BucketLater},
		{"far future", datePtr(2026, 1, 1), BucketLater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketFor(now, tt.expiry))
		})
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name   string
		expiry *time.Time
		want   string
	}{
		{"no expiry", nil, ""},
		{"expired", datePtr(2025, 3, 10), "Expired"},
		{"today", datePtr(2025, 3, 15), "Today"},
		{"tomorrow", datePtr(2025, 3, 16), "Tomorrow"},
		{"three days", datePtr(2025, 3, 18), "3 days"},
		{"seven days", datePtr(2025, 3, 22), "7 days"},
		{"beyond a week shows date", datePtr(2025, 4, 20), "2025-04-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayText(now, tt.expiry))
		})
	}
}

func TestBucketFor_AcrossDSTTransition(t *testing.T) {
	// Central Europe springs forward on 2026-03-29, so wall-clock spans
	// crossing that night are an hour short of a full day multiple.
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	localNow := time.Date(2026, 3, 28, 10, 0, 0, 0, berlin)

	localDate := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, berlin)
		return &t
	}

	tests := []struct {
		name     string
		expiry   *time.Time
		want     Bucket
		wantText string
	}{
		{"day after transition", localDate(2026, 3, 30), BucketWithinWeek, "2 days"},
		{"seven days crossing transition", localDate(2026, 4, 4), BucketWithinWeek, "7 days"},
		{"eight days crossing transition", localDate(2026, 4, 5), BucketLater, "2026-04-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketFor(localNow, tt.expiry))
			assert.Equal(t, tt.wantText, DisplayText(localNow, tt.expiry))
		})
	}
}

func TestSortFEFO(t *testing.T) {
	created := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	entries := []model.StockEntry{
		{ID: "no-expiry-old", ExpiryDate: nil, CreatedAt: created(1)},
		{ID: "late", ExpiryDate: datePtr(2025, 6, 1), CreatedAt: created(2)},
		{ID: "soon", ExpiryDate: datePtr(2025, 3, 16), CreatedAt: created(3)},
		{ID: "no-expiry-new", ExpiryDate: nil, CreatedAt: created(4)},
		{ID: "expired", ExpiryDate: datePtr(2025, 3, 1), CreatedAt: created(5)},
		{ID: "same-day-newer", ExpiryDate: datePtr(2025, 3, 16), CreatedAt: created(6)},
	}

	SortFEFO(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.ID
	}
	assert.Equal(t, []string{"expired", "soon", "same-day-newer", "late", "no-expiry-old", "no-expiry-new"}, got)
}

func TestSortFEFO_Empty(t *testing.T) {
	var entries []model.StockEntry
	SortFEFO(entries)
	assert.Empty(t, entries)
}
