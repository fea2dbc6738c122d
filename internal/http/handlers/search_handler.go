package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shelflife/internal/expiry"
	"shelflife/internal/log"
	"shelflife/internal/services"
	"shelflife/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Title": "Search"})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		return render(c, "search", fiber.Map{
			"Title": "Search", "Q": q, "Err": "Enter at least 3 characters to search",
		})
	}

	products := h.Catalog.Search(c.UserContext(), q)
	return render(c, "search", fiber.Map{
		"Title":    "Search",
		"Q":        q,
		"Searched": true,
		"Products": expiry.View(products, h.Catalog.Now()),
		"Count":    len(products),
	})
}
