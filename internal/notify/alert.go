package notify

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"shelflife/internal/domain"
	"shelflife/internal/expiry"
)

const alertTemplate = "email/expiry_alert"

// Renderer is the slice of a Fiber view engine the alert needs.
type Renderer interface {
	Render(out io.Writer, name string, binding interface{}, layout ...string) error
}

type alertRow struct {
	domain.Product
	StatusText  string
	StatusClass string
}

type AlertRenderer struct {
	views Renderer
}

func NewAlertRenderer(views Renderer) *AlertRenderer { return &AlertRenderer{views: views} }

// Subject is the alert subject line for n products.
func Subject(n int) string {
	return fmt.Sprintf("Alert: %d Products Expiring Soon", n)
}

// Render builds the subject and HTML body listing every product in full.
func (r *AlertRenderer) Render(products []domain.Product, now time.Time) (string, string, error) {
	rows := make([]alertRow, 0, len(products))
	for _, p := range products {
		row := alertRow{Product: p}
		d := expiry.DaysUntil(p.ExpiryDate, now)
		switch {
		case d <= 0:
			row.StatusClass, row.StatusText = "expired", "EXPIRED"
		case d <= 7:
			row.StatusClass, row.StatusText = "expiry-soon", fmt.Sprintf("Expires in %d days", d)
		default:
			row.StatusText = fmt.Sprintf("Expires in %d days", d)
		}
		rows = append(rows, row)
	}
	var buf bytes.Buffer
	if err := r.views.Render(&buf, alertTemplate, map[string]any{"Rows": rows}); err != nil {
		return "", "", errors.Wrap(err, "render "+alertTemplate)
	}
	return Subject(len(products)), buf.String(), nil
}
