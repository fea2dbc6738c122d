package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"shelflife/internal/domain"
	"shelflife/internal/expiry"
	"shelflife/internal/repos"
)

// CatalogService answers the read queries every page needs and passes
// mutations through to the repository.
type CatalogService struct {
	Prods *repos.ProductRepo
	Now   func() time.Time
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods, Now: time.Now}
}

func (s *CatalogService) ListAll(ctx context.Context) []domain.Product {
	return s.Prods.ListAll(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, bool) {
	return s.Prods.GetByID(ctx, id)
}

func (s *CatalogService) FindByBarcode(ctx context.Context, barcode string) (domain.Product, bool) {
	return s.Prods.FindByBarcode(ctx, barcode)
}

func (s *CatalogService) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	return s.Prods.Create(ctx, in)
}

func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, bool, error) {
	return s.Prods.Update(ctx, id, patch)
}

func (s *CatalogService) Delete(ctx context.Context, id string) (bool, error) {
	return s.Prods.Delete(ctx, id)
}

// Expiring lists products with now < expiry <= now+windowDays, soonest first.
// The window is taken as given, so zero or a negative window matches nothing;
// callers without a window pass expiry.DefaultWindow.
func (s *CatalogService) Expiring(ctx context.Context, windowDays int) []domain.Product {
	now := s.Now()
	out := []domain.Product{}
	for _, p := range s.Prods.ListAll(ctx) {
		if expiry.InWindow(p.ExpiryDate, now, windowDays) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out
}

// Expired lists products with expiry <= now, most recently expired first.
func (s *CatalogService) Expired(ctx context.Context) []domain.Product {
	now := s.Now()
	out := []domain.Product{}
	for _, p := range s.Prods.ListAll(ctx) {
		if expiry.IsExpired(p.ExpiryDate, now) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.After(out[j].ExpiryDate) })
	return out
}

// Search matches q against name and batch number ignoring case, and against
// the barcode as stored (so "bar" finds "00bar00" but not "00BAR00").
// Results keep collection order.
func (s *CatalogService) Search(ctx context.Context, q string) []domain.Product {
	lq := strings.ToLower(q)
	out := []domain.Product{}
	for _, p := range s.Prods.ListAll(ctx) {
		if strings.Contains(strings.ToLower(p.Name), lq) ||
			strings.Contains(p.Barcode, lq) ||
			(p.BatchNumber != "" && strings.Contains(strings.ToLower(p.BatchNumber), lq)) {
			out = append(out, p)
		}
	}
	return out
}
