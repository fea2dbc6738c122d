package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelflife/internal/expiry"
	"shelflife/internal/log"
	"shelflife/internal/services"
)

// dashboardPreview caps the expiring list on the home page.
const dashboardPreview = 5

type DashboardHandler struct {
	Catalog   *services.CatalogService
	Analytics *services.AnalyticsService
}

func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	sum, err := h.Analytics.Summary(c.UserContext())
	if err != nil {
		log.Error(c, "dashboard.summary.fail", err, nil)
	}
	soon := h.Catalog.Expiring(c.UserContext(), expiry.DefaultWindow)
	if len(soon) > dashboardPreview {
		soon = soon[:dashboardPreview]
	}
	return render(c, "home", fiber.Map{
		"Title":    "Dashboard",
		"Summary":  sum,
		"Expiring": expiry.View(soon, h.Catalog.Now()),
	})
}

func (h *DashboardHandler) AnalyticsPage(c *fiber.Ctx) error {
	sum, err := h.Analytics.Summary(c.UserContext())
	if err != nil {
		log.Error(c, "analytics.summary.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load analytics. Please retry.", "Q": ""})
	}
	return render(c, "analytics", fiber.Map{
		"Title":    "Analytics",
		"Summary":  sum,
		"Seasonal": h.Analytics.Seasonal(),
	})
}
