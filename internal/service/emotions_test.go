package service

import (
	"testing"
	"time"

	"github.com/serenity-health/serenity/internal/config"
)

func TestSinceDays(t *testing.T) {
	if got := sinceDays(0); !got.IsZero() {
		t.Errorf("sinceDays(0) = %v, want zero time", got)
	}
	if got := sinceDays(-5); !got.IsZero() {
		t.Errorf("sinceDays(-5) = %v, want zero time", got)
	}

	got := sinceDays(7)
	want := time.Now().UTC().AddDate(0, 0, -7)
	if diff := got.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("sinceDays(7) = %v, want about %v", got, want)
	}
}

func TestPageLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, config.DefaultPageSize},
		{-1, config.DefaultPageSize},
		{25, 25},
		{config.MaxPageSize, config.MaxPageSize},
		{config.MaxPageSize + 1, config.MaxPageSize},
	}
	for _, tc := range cases {
		if got := pageLimit(tc.in); got != tc.want {
			t.Errorf("pageLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
