package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/petbot/internal/pkg/clock"
)

type ClockTestSuite struct {
	suite.Suite
}

func TestClockSuite(t *testing.T) {
	suite.Run(t, new(ClockTestSuite))
}

func (s *ClockTestSuite) TestRealClockIsUTC() {
	now := clock.New().Now()
	s.Equal(time.UTC, now.Location())
}

func (s *ClockTestSuite) TestDateOfUsesUTCBoundary() {
	kyiv := time.FixedZone("EEST", 3*60*60)

	// 01:30 local on the 2nd is still the 1st in UTC
	local := time.Date(2025, time.March, 2, 1, 30, 0, 0, kyiv)
	s.Equal(clock.Date("2025-03-01"), clock.DateOf(local))

	utc := time.Date(2025, time.March, 1, 23, 59, 59, 0, time.UTC)
	s.Equal(clock.Date("2025-03-01"), clock.DateOf(utc))
	s.Equal(clock.Date("2025-03-02"), clock.DateOf(utc.Add(time.Second)))
}

func (s *ClockTestSuite) TestDateOrdering() {
	testCases := []struct {
		name   string
		a, b   clock.Date
		before bool
	}{
		{"zero before any date", "", "2025-01-01", true},
		{"same day", "2025-01-01", "2025-01-01", false},
		{"month rollover", "2025-01-31", "2025-02-01", true},
		{"year rollover", "2024-12-31", "2025-01-01", true},
		{"later date", "2025-02-01", "2025-01-31", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.before, tc.a.Before(tc.b))
		})
	}
}

func (s *ClockTestSuite) TestIsZero() {
	s.True(clock.Date("").IsZero())
	s.False(clock.Date("2025-01-01").IsZero())
}
