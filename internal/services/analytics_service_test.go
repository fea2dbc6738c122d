package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelflife/internal/domain"
	"shelflife/internal/services"
)

func TestSummaryEmptyCatalog(t *testing.T) {
	f := newFixture(t)
	sum, err := services.NewAnalyticsService(f.catalog).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, services.Summary{}, sum)
}

func TestSummaryBreakdown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []domain.ProductInput{
		{Name: "expired", Barcode: "1", Price: 1, ExpiryDate: now.Add(-day)},
		{Name: "soon", Barcode: "2", Price: 2, ExpiryDate: now.Add(5 * day)},
		{Name: "later", Barcode: "3", Price: 3, ExpiryDate: now.Add(45 * day)},
		{Name: "much-later", Barcode: "4", Price: 10, ExpiryDate: now.Add(90 * day)},
	} {
		_, err := f.catalog.Create(ctx, in)
		require.NoError(t, err)
	}

	sum, err := services.NewAnalyticsService(f.catalog).Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 2, sum.Valid)
	assert.Equal(t, 1, sum.Expiring)
	assert.Equal(t, 1, sum.Expired)
	assert.InDelta(t, 16.0, sum.StockValue, 1e-9)
	assert.InDelta(t, 4.0, sum.MeanPrice, 1e-9)
	assert.InDelta(t, 2.5, sum.MedianPrice, 1e-9)
	assert.InDelta(t, 3.0, sum.AtRiskValue, 1e-9)
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.catalog.Create(ctx, domain.ProductInput{
		Name: "Oat Milk", Barcode: "777", Price: 1.5, ExpiryDate: now.Add(2 * day), BatchNumber: "L9",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, services.NewExportService(f.catalog).WriteCSV(ctx, &buf))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"id", "barcode", "name", "price", "expiry_date", "batch_number", "aisle",
		"status", "days_to_expiry", "created_at", "updated_at"}, recs[0])
	assert.Equal(t, "p-1", recs[1][0])
	assert.Equal(t, "Oat Milk", recs[1][2])
	assert.Equal(t, "1.50", recs[1][3])
	assert.Equal(t, "2024-01-12T12:00:00Z", recs[1][4])
	assert.Equal(t, "EXPIRING_SOON", recs[1][7])
	assert.Equal(t, "2", recs[1][8])
}

func TestSummaryTopCategories(t *testing.T) {
	f := newFixture(t)
	for i, name := range []string{
		"Milk Whole", "Bread Rye", "Milk Oat", "Apple", "Cheese Brie",
		"Bread Sour", "Milk Skim", "Egg", "Flour", "Cheese Feta",
	} {
		f.add(t, name, fmt.Sprint(i), 10*day)
	}

	sum, err := services.NewAnalyticsService(f.catalog).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []services.CategoryCount{
		{Name: "Milk", Count: 3},
		{Name: "Bread", Count: 2},
		{Name: "Cheese", Count: 2},
		{Name: "Apple", Count: 1},
		{Name: "Egg", Count: 1},
	}, sum.Categories)
}

func TestSeasonOf(t *testing.T) {
	cases := map[time.Month]services.Season{
		time.January:   services.Winter,
		time.February:  services.Winter,
		time.March:     services.Spring,
		time.May:       services.Spring,
		time.June:      services.Summer,
		time.August:    services.Summer,
		time.September: services.Fall,
		time.November:  services.Fall,
		time.December:  services.Winter,
	}
	for m, want := range cases {
		assert.Equal(t, want, services.SeasonOf(time.Date(2024, m, 15, 0, 0, 0, 0, time.UTC)), m.String())
	}
}

func TestSeasonalSuggestionsFollowClock(t *testing.T) {
	f := newFixture(t)
	a := services.NewAnalyticsService(f.catalog)

	got := a.Seasonal()
	assert.Equal(t, services.Winter, got.Season)
	require.Len(t, got.Suggestions, 3)
	assert.Equal(t, "Holiday Decorations", got.Suggestions[0].Name)

	f.catalog.Now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }
	got = a.Seasonal()
	assert.Equal(t, services.Summer, got.Season)
	assert.Equal(t, "Sunscreen", got.Suggestions[0].Name)

	got.Suggestions[0].Name = "changed"
	assert.Equal(t, "Sunscreen", a.Seasonal().Suggestions[0].Name)
}
