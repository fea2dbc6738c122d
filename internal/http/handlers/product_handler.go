package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"shelflife/internal/domain"
	"shelflife/internal/expiry"
	"shelflife/internal/log"
	"shelflife/internal/services"
	"shelflife/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Loc     *time.Location
}

// productForm holds raw form values so a rejected submission can be shown again.
type productForm struct {
	Barcode     string
	Name        string
	Price       string
	ExpiryDate  string
	BatchNumber string
	Aisle       string
}

func formFromProduct(p domain.Product, loc *time.Location) productForm {
	return productForm{
		Barcode:     p.Barcode,
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', 2, 64),
		ExpiryDate:  p.ExpiryDate.In(loc).Format("2006-01-02"),
		BatchNumber: p.BatchNumber,
		Aisle:       p.Aisle,
	}
}

func readProductForm(c *fiber.Ctx) productForm {
	return productForm{
		Barcode:     c.FormValue("barcode"),
		Name:        c.FormValue("name"),
		Price:       c.FormValue("price"),
		ExpiryDate:  c.FormValue("expiryDate"),
		BatchNumber: c.FormValue("batchNumber"),
		Aisle:       c.FormValue("aisle"),
	}
}

// input validates the form. The returned string is a user-facing message
// when validation fails.
func (f productForm) input(loc *time.Location) (domain.ProductInput, string) {
	barcode, ok := validate.Barcode(f.Barcode)
	if !ok {
		return domain.ProductInput{}, "Enter a valid barcode"
	}
	name, ok := validate.Name(f.Name)
	if !ok {
		return domain.ProductInput{}, "Enter a product name"
	}
	exp, ok := validate.ExpiryDate(f.ExpiryDate, loc)
	if !ok {
		return domain.ProductInput{}, "Enter a valid expiry date"
	}
	return domain.ProductInput{
		Barcode:     barcode,
		Name:        name,
		Price:       validate.Price(f.Price),
		ExpiryDate:  exp,
		BatchNumber: validate.Optional(f.BatchNumber),
		Aisle:       validate.Optional(f.Aisle),
	}, ""
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps := h.Catalog.ListAll(c.UserContext())
	return render(c, "products", fiber.Map{
		"Title":    "Products",
		"Products": expiry.View(ps, h.Catalog.Now()),
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This product could not be found")
	}
	p, found := h.Catalog.GetProduct(c.UserContext(), id)
	if !found {
		return notFound(c, "This product could not be found")
	}
	return render(c, "product", fiber.Map{
		"Title": p.Name,
		"P":     domain.ProductView{Product: p, Classification: expiry.Classify(p.ExpiryDate, h.Catalog.Now())},
	})
}

// GET /products/add, optionally prefilled with ?barcode=
func (h *ProductHandler) AddForm(c *fiber.Ctx) error {
	f := productForm{}
	if b, ok := validate.Barcode(c.Query("barcode")); ok {
		f.Barcode = b
	}
	return h.showForm(c, fiber.StatusOK, false, "/products", f, "")
}

func (h *ProductHandler) showForm(c *fiber.Ctx, status int, editing bool, action string, f productForm, msg string) error {
	title := "Add Product"
	if editing {
		title = "Edit Product"
	}
	c.Status(status)
	return render(c, "product_form", fiber.Map{
		"Title":   title,
		"Editing": editing,
		"Action":  action,
		"F":       f,
		"Err":     msg,
	})
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	f := readProductForm(c)
	in, msg := f.input(h.Loc)
	if msg != "" {
		log.Security(c, "validation.fail", map[string]any{"form": "product.create", "reason": msg})
		return h.showForm(c, fiber.StatusBadRequest, false, "/products", f, msg)
	}
	p, err := h.Catalog.Create(c.UserContext(), in)
	if err != nil {
		log.Error(c, "products.create.fail", err, map[string]any{"barcode": in.Barcode})
		return h.showForm(c, fiber.StatusInternalServerError, false, "/products", f, "Could not save the product. Please retry.")
	}
	log.Audit(c, "products.create", map[string]any{"product_id": p.ID, "barcode": p.Barcode})
	return c.Redirect("/products/" + p.ID)
}

// GET /products/:id/edit
func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This product could not be found")
	}
	p, found := h.Catalog.GetProduct(c.UserContext(), id)
	if !found {
		return notFound(c, "This product could not be found")
	}
	return h.showForm(c, fiber.StatusOK, true, "/products/"+p.ID, formFromProduct(p, h.Loc), "")
}

// POST /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This product could not be found")
	}
	f := readProductForm(c)
	in, msg := f.input(h.Loc)
	if msg != "" {
		log.Security(c, "validation.fail", map[string]any{"form": "product.update", "reason": msg})
		return h.showForm(c, fiber.StatusBadRequest, true, "/products/"+id, f, msg)
	}
	patch := domain.ProductPatch{
		Barcode:     &in.Barcode,
		Name:        &in.Name,
		Price:       &in.Price,
		ExpiryDate:  &in.ExpiryDate,
		BatchNumber: &in.BatchNumber,
		Aisle:       &in.Aisle,
	}
	p, found, err := h.Catalog.Update(c.UserContext(), id, patch)
	if err != nil {
		log.Error(c, "products.update.fail", err, map[string]any{"product_id": id})
		return h.showForm(c, fiber.StatusInternalServerError, true, "/products/"+id, f, "Could not save the product. Please retry.")
	}
	if !found {
		return notFound(c, "This product could not be found")
	}
	log.Audit(c, "products.update", map[string]any{"product_id": p.ID})
	return c.Redirect("/products/" + p.ID)
}

// POST /products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This product could not be found")
	}
	found, err := h.Catalog.Delete(c.UserContext(), id)
	if err != nil {
		log.Error(c, "products.delete.fail", err, map[string]any{"product_id": id})
		return err
	}
	if !found {
		return notFound(c, "This product could not be found")
	}
	log.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.Redirect("/products")
}

// GET /scan?barcode= jumps to a known product or offers to add a new one.
func (h *ProductHandler) Scan(c *fiber.Ctx) error {
	raw := c.Query("barcode")
	if raw == "" {
		return render(c, "scan", fiber.Map{"Title": "Scan"})
	}
	barcode, ok := validate.Barcode(raw)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "barcode"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "scan", fiber.Map{"Title": "Scan", "Err": "That does not look like a barcode"})
	}
	if p, found := h.Catalog.FindByBarcode(c.UserContext(), barcode); found {
		return c.Redirect("/products/" + p.ID)
	}
	return c.Redirect("/products/add?barcode=" + barcode)
}
