package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayouts = []string{"2006-1-2", "1/2/2006", "2/1/2006", "2006-1-2 15:04:05", "1/2/2006 15:04:05"}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDatesISO(t *testing.T) {
	got := ParseDates([]string{"2024-01-15", "2024-3-5", "garbage", ""}, testLayouts)
	require.Len(t, got, 4)
	assert.Equal(t, day(2024, 1, 15), got[0])
	assert.Equal(t, day(2024, 3, 5), got[1])
	assert.True(t, got[2].IsZero())
	assert.True(t, got[3].IsZero())
}

func TestParseDatesFirstSuccessfulLayoutWins(t *testing.T) {
	// Month-first parses "03/04/2024", so the whole column is month-first
	// and "13/04/2024" becomes unknown.
	got := ParseDates([]string{"03/04/2024", "13/04/2024"}, testLayouts)
	assert.Equal(t, day(2024, 3, 4), got[0])
	assert.True(t, got[1].IsZero())
}

func TestParseDatesDayFirst(t *testing.T) {
	got := ParseDates([]string{"25/12/2023"}, []string{"1/2/2006", "2/1/2006"})
	assert.Equal(t, day(2023, 12, 25), got[0])
}

func TestParseDatesWithTime(t *testing.T) {
	got := ParseDates([]string{"2024-02-01 13:45:00"}, testLayouts)
	assert.Equal(t, time.Date(2024, 2, 1, 13, 45, 0, 0, time.UTC), got[0])
}

func TestParseDatesPermissiveFallback(t *testing.T) {
	got := ParseDates([]string{"January 15, 2024", "nan"}, testLayouts)
	assert.Equal(t, 2024, got[0].Year())
	assert.Equal(t, time.January, got[0].Month())
	assert.Equal(t, 15, got[0].Day())
	assert.True(t, got[1].IsZero())
}

func TestParseDatesEmpty(t *testing.T) {
	assert.Empty(t, ParseDates(nil, testLayouts))
}
