package domain

// Status is the three-way badge used on product cards and detail pages.
type Status string

const (
	StatusValid        Status = "VALID"
	StatusExpiringSoon Status = "EXPIRING_SOON"
	StatusExpired      Status = "EXPIRED"
)

// Band is the severity badge used on the expiring list.
type Band string

const (
	BandExpired  Band = "EXPIRED"
	BandCritical Band = "CRITICAL" // 1-3 days
	BandWarning  Band = "WARNING"  // 4-7 days
	BandNormal   Band = "NORMAL"
)

// Classification bundles both bandings for one product at one instant.
type Classification struct {
	Status       Status `json:"status"`
	Band         Band   `json:"band"`
	DaysToExpiry int    `json:"daysToExpiry"`
	DaysUntil    int    `json:"daysUntil"`
}

// ProductView pairs a product with its classification for rendering.
type ProductView struct {
	Product
	Classification
}
