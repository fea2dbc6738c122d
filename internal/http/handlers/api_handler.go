package handlers

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"shelflife/internal/domain"
	"shelflife/internal/expiry"
	"shelflife/internal/log"
	"shelflife/internal/repos"
	"shelflife/internal/services"
	"shelflife/internal/validate"
)

// CSVExporter writes the catalog as CSV; *services.ExportService satisfies it.
type CSVExporter interface {
	WriteCSV(ctx context.Context, w io.Writer) error
}

// APIHandler serves the JSON API under /api/v1.
type APIHandler struct {
	Catalog   *services.CatalogService
	Settings  *repos.SettingsRepo
	Analytics *services.AnalyticsService
	Export    CSVExporter
	Loc       *time.Location
}

// productBody accepts price as a number or a numeric string.
type productBody struct {
	Barcode     *string `json:"barcode"`
	Name        *string `json:"name"`
	Price       any     `json:"price"`
	ExpiryDate  *string `json:"expiryDate"`
	BatchNumber *string `json:"batchNumber"`
	Aisle       *string `json:"aisle"`
}

func badRequest(c *fiber.Ctx, msg string) error {
	log.Security(c, "validation.fail", map[string]any{"reason": msg})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func storageError(c *fiber.Ctx, action string, err error) error {
	log.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable, retry soon"})
}

func apiPrice(v any) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// patch validates the fields present in the body.
func (b productBody) patch(loc *time.Location) (domain.ProductPatch, string) {
	var p domain.ProductPatch
	if b.Barcode != nil {
		v, ok := validate.Barcode(*b.Barcode)
		if !ok {
			return p, "invalid barcode"
		}
		p.Barcode = &v
	}
	if b.Name != nil {
		v, ok := validate.Name(*b.Name)
		if !ok {
			return p, "invalid name"
		}
		p.Name = &v
	}
	if b.Price != nil {
		v := apiPrice(b.Price)
		p.Price = &v
	}
	if b.ExpiryDate != nil {
		v, ok := validate.ExpiryDate(*b.ExpiryDate, loc)
		if !ok {
			return p, "invalid expiryDate"
		}
		p.ExpiryDate = &v
	}
	if b.BatchNumber != nil {
		v := validate.Optional(*b.BatchNumber)
		p.BatchNumber = &v
	}
	if b.Aisle != nil {
		v := validate.Optional(*b.Aisle)
		p.Aisle = &v
	}
	return p, ""
}

func (h *APIHandler) view(p domain.Product) domain.ProductView {
	return domain.ProductView{Product: p, Classification: expiry.Classify(p.ExpiryDate, h.Catalog.Now())}
}

// GET /api/v1/products
func (h *APIHandler) List(c *fiber.Ctx) error {
	return c.JSON(expiry.View(h.Catalog.ListAll(c.UserContext()), h.Catalog.Now()))
}

// GET /api/v1/products/:id
func (h *APIHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, found := h.Catalog.GetProduct(c.UserContext(), id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(h.view(p))
}

// GET /api/v1/products/barcode/:barcode
func (h *APIHandler) ByBarcode(c *fiber.Ctx) error {
	barcode, ok := validate.Barcode(c.Params("barcode"))
	if !ok {
		return badRequest(c, "invalid barcode")
	}
	p, found := h.Catalog.FindByBarcode(c.UserContext(), barcode)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(h.view(p))
}

// POST /api/v1/products
func (h *APIHandler) Create(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed body")
	}
	if body.Barcode == nil || body.Name == nil || body.ExpiryDate == nil {
		return badRequest(c, "barcode, name and expiryDate are required")
	}
	patch, msg := body.patch(h.Loc)
	if msg != "" {
		return badRequest(c, msg)
	}
	in := domain.ProductInput{Barcode: *patch.Barcode, Name: *patch.Name, ExpiryDate: *patch.ExpiryDate}
	if patch.Price != nil {
		in.Price = *patch.Price
	}
	if patch.BatchNumber != nil {
		in.BatchNumber = *patch.BatchNumber
	}
	if patch.Aisle != nil {
		in.Aisle = *patch.Aisle
	}

	p, err := h.Catalog.Create(c.UserContext(), in)
	if err != nil {
		return storageError(c, "api.products.create.fail", err)
	}
	log.Audit(c, "api.products.create", map[string]any{"product_id": p.ID, "barcode": p.Barcode})
	return c.Status(fiber.StatusCreated).JSON(h.view(p))
}

// PUT /api/v1/products/:id applies only the fields present in the body.
func (h *APIHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed body")
	}
	patch, msg := body.patch(h.Loc)
	if msg != "" {
		return badRequest(c, msg)
	}
	p, found, err := h.Catalog.Update(c.UserContext(), id, patch)
	if err != nil {
		return storageError(c, "api.products.update.fail", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	log.Audit(c, "api.products.update", map[string]any{"product_id": id})
	return c.JSON(h.view(p))
}

// DELETE /api/v1/products/:id
func (h *APIHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	found, err := h.Catalog.Delete(c.UserContext(), id)
	if err != nil {
		return storageError(c, "api.products.delete.fail", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	log.Audit(c, "api.products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/products/expiring?days=
func (h *APIHandler) Expiring(c *fiber.Ctx) error {
	ps := h.Catalog.Expiring(c.UserContext(), windowParam(c))
	return c.JSON(expiry.View(ps, h.Catalog.Now()))
}

// GET /api/v1/products/expired
func (h *APIHandler) Expired(c *fiber.Ctx) error {
	return c.JSON(expiry.View(h.Catalog.Expired(c.UserContext()), h.Catalog.Now()))
}

// GET /api/v1/products/search?q=
func (h *APIHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return badRequest(c, "query must be at least 3 characters")
	}
	return c.JSON(expiry.View(h.Catalog.Search(c.UserContext(), q), h.Catalog.Now()))
}

// GET /api/v1/products/export.csv
func (h *APIHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Export.WriteCSV(c.UserContext(), &buf); err != nil {
		log.Error(c, "api.export.fail", err, nil)
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(buf.Bytes())
}

// GET /api/v1/settings
func (h *APIHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.Settings.Get(c.UserContext()))
}

// PUT /api/v1/settings merges the given keys over the current settings.
func (h *APIHandler) SaveSettings(c *fiber.Ctx) error {
	var patch domain.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "malformed body")
	}
	if patch.Email != nil {
		e, ok := validate.NotificationEmail(*patch.Email)
		if !ok {
			return badRequest(c, "invalid email")
		}
		patch.Email = &e
	}
	if patch.NotifyDays != nil {
		d := validate.NotifyDays(cast.ToString(*patch.NotifyDays))
		patch.NotifyDays = &d
	}
	s, err := h.Settings.Save(c.UserContext(), patch)
	if err != nil {
		return storageError(c, "api.settings.save.fail", err)
	}
	log.Audit(c, "api.settings.save", map[string]any{"notify_days": s.NotifyDays})
	return c.JSON(s)
}

// GET /api/v1/analytics
func (h *APIHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Analytics.Summary(c.UserContext())
	if err != nil {
		return storageError(c, "api.analytics.fail", err)
	}
	return c.JSON(sum)
}
