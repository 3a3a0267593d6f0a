package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/salesmix/internal/model"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"D", PeriodDay}, {"week", PeriodWeek}, {"M", PeriodMonth}, {"", PeriodMonth},
		{"Q", PeriodQuarter}, {"year", PeriodYear},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestPeriodStart(t *testing.T) {
	// Thursday 2024-05-16
	ts := time.Date(2024, 5, 16, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		period Period
		want   string
	}{
		{PeriodDay, "2024-05-16"},
		{PeriodWeek, "2024-05-13"},
		{PeriodMonth, "2024-05-01"},
		{PeriodQuarter, "2024-04-01"},
		{PeriodYear, "2024-01-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.period.Start(ts).Format("2006-01-02"), string(tt.period))
	}

	// Sunday belongs to the week starting the previous Monday.
	sunday := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-27", PeriodWeek.Start(sunday).Format("2006-01-02"))
}

func TestTrends(t *testing.T) {
	records := []model.Record{
		dated(rec("C1", "Retail", "Gifts", 100), 2024, 2, 10),
		dated(rec("C2", "Retail", "Gifts", 50), 2024, 2, 20),
		dated(rec("C1", "Retail", "Cards", 30), 2024, 1, 5),
		dated(rec("H1", "Healthcare", "Gifts", 10), 2024, 2, 1),
		rec("C3", "Retail", "Gifts", 999),
	}

	points, err := Trends(records, PeriodMonth)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-01-01", points[0].Period)
	assert.Equal(t, "Cards", points[0].ProductCategory)
	assert.Equal(t, "2024-02-01", points[1].Period)
	assert.Equal(t, "Healthcare", points[1].BusinessCategory)
	assert.Equal(t, "Retail", points[2].BusinessCategory)
	assert.Equal(t, "150", points[2].SalesAmount.String())
}

func TestTrendsInvalidPeriod(t *testing.T) {
	_, err := Trends(nil, Period("hour"))
	assert.Error(t, err)

	points, err := Trends(nil, PeriodDay)
	require.NoError(t, err)
	assert.Empty(t, points)
}
