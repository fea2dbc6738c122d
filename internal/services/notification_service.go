package services

import (
	"context"

	"github.com/pkg/errors"

	"shelflife/internal/domain"
	"shelflife/internal/expiry"
	applog "shelflife/internal/log"
	"shelflife/internal/notify"
	"shelflife/internal/repos"
)

type CheckResult struct {
	ExpiringCount    int  `json:"expiringCount"`
	NotificationSent bool `json:"notificationSent"`
	DeletedCount     int  `json:"deletedCount"`
}

// ShouldNotify fires only for enabled notifications, a non-empty expiring
// list and a configured address.
func ShouldNotify(s domain.Settings, expiring []domain.Product) bool {
	return s.EnableNotifications && len(expiring) > 0 && s.Email != ""
}

type NotificationService struct {
	Catalog  *CatalogService
	Settings *repos.SettingsRepo
	Sender   notify.EmailSender
	Alerts   *notify.AlertRenderer
}

func NewNotificationService(catalog *CatalogService, settings *repos.SettingsRepo, sender notify.EmailSender, alerts *notify.AlertRenderer) *NotificationService {
	return &NotificationService{Catalog: catalog, Settings: settings, Sender: sender, Alerts: alerts}
}

// CheckExpiry evaluates the notification policy once: it lists products
// expiring within the configured window, sends the alert when ShouldNotify
// holds and, with auto-delete on, purges expired products.
func (s *NotificationService) CheckExpiry(ctx context.Context) (CheckResult, error) {
	settings := s.Settings.Get(ctx)
	expiring := s.Catalog.Expiring(ctx, settings.NotifyDays)
	res := CheckResult{ExpiringCount: len(expiring)}

	if ShouldNotify(settings, expiring) {
		now := s.Catalog.Now()
		subject, body, err := s.Alerts.Render(expiring, now)
		if err != nil {
			return res, errors.Wrap(err, "render expiry alert")
		}
		if _, err := s.Sender.SendEmail(ctx, settings.Email, subject, body); err != nil {
			return res, errors.Wrap(err, "send expiry alert")
		}
		res.NotificationSent = true
	}

	if settings.EnableAutoDelete {
		now := s.Catalog.Now()
		n, err := s.Catalog.Prods.DeleteWhere(ctx, func(p domain.Product) bool {
			return expiry.IsExpired(p.ExpiryDate, now)
		})
		if err != nil {
			return res, errors.Wrap(err, "auto-delete expired products")
		}
		res.DeletedCount = n
	}

	applog.Info(nil, "expiry.check", map[string]any{
		"expiring": res.ExpiringCount,
		"sent":     res.NotificationSent,
		"deleted":  res.DeletedCount,
	})
	return res, nil
}
