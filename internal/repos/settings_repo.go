package repos

import (
	"context"
	"sync"

	"shelflife/internal/domain"
	applog "shelflife/internal/log"
	"shelflife/internal/store"
)

// SettingsRepo owns the singleton settings record.
type SettingsRepo struct {
	mu    sync.Mutex
	store store.Backend
}

func NewSettingsRepo(b store.Backend) *SettingsRepo { return &SettingsRepo{store: b} }

func (r *SettingsRepo) current(ctx context.Context) (domain.Settings, error) {
	s := domain.DefaultSettings()
	doc, err := r.store.Load(ctx, store.KindSettings)
	if err != nil {
		return s, err
	}
	var persisted domain.SettingsPatch
	if err := store.Decode(store.KindSettings, doc, &persisted); err != nil {
		return s, err
	}
	persisted.Apply(&s)
	return s, nil
}

// Get returns defaults with any persisted values laid over them. An unreadable
// record is logged and reads as defaults.
func (r *SettingsRepo) Get(ctx context.Context) domain.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.current(ctx)
	if err != nil {
		applog.Error(nil, "settings.read.fail", err, nil)
		return domain.DefaultSettings()
	}
	return s
}

// Save merges patch onto the current settings and persists the whole record.
func (r *SettingsRepo) Save(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.current(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	patch.Apply(&s)
	doc, err := store.Encode(store.KindSettings, s)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := r.store.Save(ctx, store.KindSettings, doc); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}
