package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestParseStayDates_ValidRange(t *testing.T) {
	checkIn, checkOut, nights, err := parseStayDates(futureDate(7), futureDate(10))

	require.NoError(t, err)
	assert.Equal(t, 3, nights)
	assert.True(t, checkOut.After(checkIn))
}

func TestParseStayDates_SingleNight(t *testing.T) {
	_, _, nights, err := parseStayDates(futureDate(1), futureDate(2))

	require.NoError(t, err)
	assert.Equal(t, 1, nights)
}

func TestParseStayDates_InvalidFormat(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"slashes", "2026/09/10", "2026/09/12"},
		{"reversed layout", "10-09-2026", "12-09-2026"},
		{"empty check-in", "", futureDate(2)},
		{"empty check-out", futureDate(1), ""},
		{"not a date", "tomorrow", futureDate(2)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := parseStayDates(tc.checkIn, tc.checkOut)
			assert.ErrorIs(t, err, ErrInvalidDateFormat)
		})
	}
}

func TestParseStayDates_CheckInInPast(t *testing.T) {
	_, _, _, err := parseStayDates(futureDate(-1), futureDate(2))

	assert.ErrorIs(t, err, ErrCheckInPast)
}

func TestParseStayDates_CheckOutNotAfterCheckIn(t *testing.T) {
	sameDay := futureDate(5)

	_, _, _, err := parseStayDates(sameDay, sameDay)
	assert.ErrorIs(t, err, ErrCheckOutNotAfter)

	_, _, _, err = parseStayDates(futureDate(5), futureDate(3))
	assert.ErrorIs(t, err, ErrCheckOutNotAfter)
}

func TestParseStayDates_StayTooLong(t *testing.T) {
	_, _, _, err := parseStayDates(futureDate(1), futureDate(1+maxStayNights+1))

	assert.ErrorIs(t, err, ErrStayTooLong)
}

func TestParseStayDates_MaxStayAllowed(t *testing.T) {
	_, _, nights, err := parseStayDates(futureDate(1), futureDate(1+maxStayNights))

	require.NoError(t, err)
	assert.Equal(t, maxStayNights, nights)
}

func TestGenerateBookingReference_Format(t *testing.T) {
	svc := &service{}

	ref, err := svc.generateBookingReference()

	require.NoError(t, err)
	assert.Regexp(t, `^STY-\d{8}-[A-Z]{6}$`, ref)
}

func TestGenerateBookingReference_Unique(t *testing.T) {
	svc := &service{}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := svc.generateBookingReference()
		require.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
