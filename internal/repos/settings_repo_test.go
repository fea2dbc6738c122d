package repos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelflife/internal/domain"
	"shelflife/internal/repos"
	"shelflife/internal/store"
)

func ptr[T any](v T) *T { return &v }

func TestSettingsDefaultsOnFirstRead(t *testing.T) {
	r := repos.NewSettingsRepo(store.NewMemoryBackend())
	assert.Equal(t, domain.DefaultSettings(), r.Get(context.Background()))
}

func TestSettingsSaveMergesPartial(t *testing.T) {
	ctx := context.Background()
	r := repos.NewSettingsRepo(store.NewMemoryBackend())

	s, err := r.Save(ctx, domain.SettingsPatch{Email: ptr("a@b.com")})
	require.NoError(t, err)
	want := domain.DefaultSettings()
	want.Email = "a@b.com"
	assert.Equal(t, want, s)
	assert.Equal(t, want, r.Get(ctx))

	// A later partial write keeps earlier values.
	s, err = r.Save(ctx, domain.SettingsPatch{NotifyDays: ptr(14), EnableNotifications: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", s.Email)
	assert.Equal(t, 14, s.NotifyDays)
	assert.False(t, s.EnableNotifications)
	assert.False(t, s.EnableAutoDelete)
}

func TestSettingsOlderDocumentGetsDefaultsUnderneath(t *testing.T) {
	mem := store.NewMemoryBackend()
	mem.Put(store.KindSettings, []byte(`{"email":"ops@shop.test","enableNotifications":false}`))

	s := repos.NewSettingsRepo(mem).Get(context.Background())
	assert.Equal(t, "ops@shop.test", s.Email)
	assert.False(t, s.EnableNotifications)
	assert.Equal(t, 30, s.NotifyDays)
}

func TestSettingsReadFailure(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryBackend()
	mem.LoadErr = errors.New("permission denied")
	r := repos.NewSettingsRepo(mem)

	assert.Equal(t, domain.DefaultSettings(), r.Get(ctx))
	_, err := r.Save(ctx, domain.SettingsPatch{Email: ptr("x@y.z")})
	assert.True(t, store.IsStorageFailure(err))
}

func TestSettingsSaveFailure(t *testing.T) {
	mem := store.NewMemoryBackend()
	mem.SaveErr = errors.New("read-only filesystem")
	_, err := repos.NewSettingsRepo(mem).Save(context.Background(), domain.SettingsPatch{NotifyDays: ptr(5)})
	assert.True(t, store.IsStorageFailure(err))
}
