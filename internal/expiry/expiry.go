// Package expiry classifies products against a reference instant. Everything
// here is a pure function of (expiry, now).
package expiry

import (
	"math"
	"time"

	"shelflife/internal/domain"
)

const (
	Day = 24 * time.Hour

	// SoonWindow splits Valid from ExpiringSoon on cards and detail pages.
	SoonWindow = 7 * Day

	// DefaultWindow is the expiring-list and notification window in days.
	DefaultWindow = 30
)

// IsExpired is true at and after the expiry instant.
func IsExpired(expiry, now time.Time) bool {
	return !expiry.After(now)
}

func IsExpiringSoon(expiry, now time.Time) bool {
	return !IsExpired(expiry, now) && expiry.Before(now.Add(SoonWindow))
}

// DaysUntil is ceil((expiry-now)/1 day); negative once expired.
func DaysUntil(expiry, now time.Time) int {
	return int(math.Ceil(float64(expiry.Sub(now)) / float64(Day)))
}

// DaysToExpiry is DaysUntil floored at zero.
func DaysToExpiry(expiry, now time.Time) int {
	if d := DaysUntil(expiry, now); d > 0 {
		return d
	}
	return 0
}

func StatusOf(expiry, now time.Time) domain.Status {
	switch {
	case IsExpired(expiry, now):
		return domain.StatusExpired
	case IsExpiringSoon(expiry, now):
		return domain.StatusExpiringSoon
	default:
		return domain.StatusValid
	}
}

// BandOf drives badge severity on the expiring list.
func BandOf(expiry, now time.Time) domain.Band {
	d := DaysUntil(expiry, now)
	switch {
	case d <= 0:
		return domain.BandExpired
	case d <= 3:
		return domain.BandCritical
	case d <= 7:
		return domain.BandWarning
	default:
		return domain.BandNormal
	}
}

func Classify(expiry, now time.Time) domain.Classification {
	return domain.Classification{
		Status:       StatusOf(expiry, now),
		Band:         BandOf(expiry, now),
		DaysToExpiry: DaysToExpiry(expiry, now),
		DaysUntil:    DaysUntil(expiry, now),
	}
}

// View classifies each product in order.
func View(products []domain.Product, now time.Time) []domain.ProductView {
	out := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, domain.ProductView{Product: p, Classification: Classify(p.ExpiryDate, now)})
	}
	return out
}

// InWindow reports now < expiry <= now+days.
func InWindow(expiry, now time.Time, days int) bool {
	return expiry.After(now) && !expiry.After(now.Add(time.Duration(days)*Day))
}
