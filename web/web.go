// Package web embeds the page and email templates.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	html "github.com/gofiber/template/html/v2"
)

//go:embed templates
var files embed.FS

// NewEngine returns a Fiber view engine over the embedded templates. Names
// are paths under templates/ without the extension, e.g. "email/expiry_alert".
func NewEngine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", func(v float64) string { return fmt.Sprintf("$%.2f", v) })
	engine.AddFunc("date", func(t time.Time) string { return t.Format("1/2/2006") })
	engine.AddFunc("na", func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	})
	return engine
}
