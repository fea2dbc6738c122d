package repos

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shelflife/internal/domain"
	applog "shelflife/internal/log"
	"shelflife/internal/store"
)

// ProductRepo owns the products document. Every operation loads the whole
// collection, transforms it in memory and, for mutations, saves it back.
type ProductRepo struct {
	mu    sync.Mutex
	store store.Backend

	Now   func() time.Time
	NewID func() string
}

func NewProductRepo(b store.Backend) *ProductRepo {
	return &ProductRepo{store: b, Now: time.Now, NewID: uuid.NewString}
}

func (r *ProductRepo) load(ctx context.Context) ([]domain.Product, error) {
	doc, err := r.store.Load(ctx, store.KindProducts)
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	if err := store.Decode(store.KindProducts, doc, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}

func (r *ProductRepo) save(ctx context.Context, ps []domain.Product) error {
	doc, err := store.Encode(store.KindProducts, ps)
	if err != nil {
		return err
	}
	return r.store.Save(ctx, store.KindProducts, doc)
}

func (r *ProductRepo) now() time.Time { return r.Now().UTC() }

// ListAll returns the collection in storage order. Read failures are logged
// and yield an empty collection.
func (r *ProductRepo) ListAll(ctx context.Context) []domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	ps, err := r.load(ctx)
	if err != nil {
		applog.Error(nil, "products.read.fail", err, nil)
		return []domain.Product{}
	}
	return ps
}

// GetByID returns the first product with the id.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (domain.Product, bool) {
	for _, p := range r.ListAll(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// FindByBarcode returns the first product with the barcode; later duplicates
// are shadowed.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (domain.Product, bool) {
	for _, p := range r.ListAll(ctx) {
		if p.Barcode == barcode {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Create stamps a fresh id and timestamps and appends the product. When the
// save fails the constructed product is still returned, uncommitted.
func (r *ProductRepo) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	ts := r.now()
	p := domain.Product{
		ID:          r.NewID(),
		Barcode:     in.Barcode,
		Name:        in.Name,
		Price:       in.Price,
		ExpiryDate:  in.ExpiryDate,
		BatchNumber: in.BatchNumber,
		Aisle:       in.Aisle,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := r.save(ctx, append(ps, p)); err != nil {
		return p, err
	}
	return p, nil
}

// Update merges patch onto the product with the id. ok is false when no such
// product exists; nothing is written in that case.
func (r *ProductRepo) Update(ctx context.Context, id string, patch domain.ProductPatch) (p domain.Product, ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.load(ctx)
	if err != nil {
		return domain.Product{}, false, err
	}
	i := indexOf(ps, id)
	if i < 0 {
		return domain.Product{}, false, nil
	}
	next := ps[i]
	patch.Apply(&next)
	ts := r.now()
	if !ts.After(next.UpdatedAt) {
		// keep updatedAt strictly increasing under a coarse or skewed clock
		ts = next.UpdatedAt.Add(time.Nanosecond)
	}
	next.UpdatedAt = ts
	ps[i] = next
	if err := r.save(ctx, ps); err != nil {
		return domain.Product{}, true, err
	}
	return next, true, nil
}

// Delete removes the first product with the id and reports whether it did.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(ps, id)
	if i < 0 {
		return false, nil
	}
	ps = append(ps[:i], ps[i+1:]...)
	if err := r.save(ctx, ps); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteWhere removes every product match accepts in a single save and
// returns how many went.
func (r *ProductRepo) DeleteWhere(ctx context.Context, match func(domain.Product) bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := ps[:0:0]
	for _, p := range ps {
		if !match(p) {
			kept = append(kept, p)
		}
	}
	n := len(ps) - len(kept)
	if n == 0 {
		return 0, nil
	}
	if err := r.save(ctx, kept); err != nil {
		return 0, err
	}
	return n, nil
}

func indexOf(ps []domain.Product, id string) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}
