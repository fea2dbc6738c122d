package services

import (
	"context"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"shelflife/internal/domain"
	"shelflife/internal/expiry"
)

// topCategories caps the category breakdown.
const topCategories = 5

// Summary is the analytics page breakdown. Valid means beyond the 30 day
// expiring window.
type Summary struct {
	Total       int     `json:"total"`
	Valid       int     `json:"valid"`
	Expiring    int     `json:"expiring"`
	Expired     int     `json:"expired"`
	StockValue  float64 `json:"stockValue"`
	MeanPrice   float64 `json:"meanPrice"`
	MedianPrice float64 `json:"medianPrice"`
	AtRiskValue float64 `json:"atRiskValue"` // price sum of expiring + expired

	Categories []CategoryCount `json:"categories,omitempty"`
}

// CategoryCount is one bar of the category breakdown. Products carry no
// category field, so the first word of the name stands in for one.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AnalyticsService struct {
	Catalog *CatalogService
}

func NewAnalyticsService(catalog *CatalogService) *AnalyticsService {
	return &AnalyticsService{Catalog: catalog}
}

func (s *AnalyticsService) Summary(ctx context.Context) (Summary, error) {
	all := s.Catalog.ListAll(ctx)
	expiring := s.Catalog.Expiring(ctx, expiry.DefaultWindow)
	expired := s.Catalog.Expired(ctx)

	now := s.Catalog.Now()
	horizon := now.Add(expiry.DefaultWindow * expiry.Day)
	sum := Summary{Total: len(all), Expiring: len(expiring), Expired: len(expired)}
	for _, p := range all {
		if p.ExpiryDate.After(horizon) {
			sum.Valid++
		}
	}
	if len(all) == 0 {
		return sum, nil
	}
	sum.Categories = categories(all)

	prices := make(stats.Float64Data, 0, len(all))
	for _, p := range all {
		prices = append(prices, p.Price)
	}
	var err error
	if sum.StockValue, err = prices.Sum(); err != nil {
		return sum, err
	}
	if sum.MeanPrice, err = prices.Mean(); err != nil {
		return sum, err
	}
	if sum.MedianPrice, err = prices.Median(); err != nil {
		return sum, err
	}

	atRisk := make(stats.Float64Data, 0, len(expiring)+len(expired))
	for _, p := range append(expiring, expired...) {
		atRisk = append(atRisk, p.Price)
	}
	if len(atRisk) > 0 {
		if sum.AtRiskValue, err = atRisk.Sum(); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// categories counts products by the first word of their name and keeps the
// largest groups, ties in first-seen order.
func categories(ps []domain.Product) []CategoryCount {
	idx := map[string]int{}
	out := []CategoryCount{}
	for _, p := range ps {
		name := strings.Split(p.Name, " ")[0]
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, CategoryCount{Name: name})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topCategories {
		out = out[:topCategories]
	}
	return out
}
