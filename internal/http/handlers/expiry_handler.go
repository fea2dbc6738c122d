package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"shelflife/internal/expiry"
	"shelflife/internal/log"
	"shelflife/internal/services"
)

// ExpiryChecker runs one notification check; *services.NotificationService
// satisfies it.
type ExpiryChecker interface {
	CheckExpiry(ctx context.Context) (services.CheckResult, error)
}

type ExpiryHandler struct {
	Catalog *services.CatalogService
	Checker ExpiryChecker
}

// GET /expiring?days=
func (h *ExpiryHandler) Page(c *fiber.Ctx) error {
	window := windowParam(c)
	now := h.Catalog.Now()
	return render(c, "expiring", fiber.Map{
		"Title":    "Expiring",
		"Window":   window,
		"Expiring": expiry.View(h.Catalog.Expiring(c.UserContext(), window), now),
		"Expired":  expiry.View(h.Catalog.Expired(c.UserContext()), now),
	})
}

// GET /api/cron/check-expiry
func (h *ExpiryHandler) CronCheck(c *fiber.Ctx) error {
	res, err := h.Checker.CheckExpiry(c.UserContext())
	if err != nil {
		log.Error(c, "cron.check.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to check expiry",
		})
	}
	log.Info(c, "cron.check", map[string]any{"expiring": res.ExpiringCount, "sent": res.NotificationSent})
	return c.JSON(fiber.Map{
		"success":          true,
		"expiringCount":    res.ExpiringCount,
		"notificationSent": res.NotificationSent,
		"deletedCount":     res.DeletedCount,
	})
}

// windowParam reads ?days=, falling back to the default window.
func windowParam(c *fiber.Ctx) int {
	days, err := cast.ToIntE(c.Query("days"))
	if err != nil || days <= 0 {
		return expiry.DefaultWindow
	}
	if days > 365 {
		return 365
	}
	return days
}
