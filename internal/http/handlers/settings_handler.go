package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelflife/internal/domain"
	"shelflife/internal/log"
	"shelflife/internal/repos"
	"shelflife/internal/validate"
)

type SettingsHandler struct {
	Settings *repos.SettingsRepo
}

func (h *SettingsHandler) Form(c *fiber.Ctx) error {
	return render(c, "settings", fiber.Map{
		"Title": "Settings",
		"S":     h.Settings.Get(c.UserContext()),
		"Saved": c.Query("saved") == "1",
	})
}

// POST /settings. Unchecked boxes are absent from the form, so both toggles
// are always written.
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	email, ok := validate.NotificationEmail(c.FormValue("email"))
	days := validate.NotifyDays(c.FormValue("notifyDays"))
	notifyOn := validate.Checkbox(c.FormValue("enableNotifications"))
	autoDelete := validate.Checkbox(c.FormValue("enableAutoDelete"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "email"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "settings", fiber.Map{
			"Title": "Settings",
			"S": domain.Settings{
				Email:               c.FormValue("email"),
				NotifyDays:          days,
				EnableNotifications: notifyOn,
				EnableAutoDelete:    autoDelete,
			},
			"Err": "Enter a valid email address",
		})
	}

	saved, err := h.Settings.Save(c.UserContext(), domain.SettingsPatch{
		Email:               &email,
		NotifyDays:          &days,
		EnableNotifications: &notifyOn,
		EnableAutoDelete:    &autoDelete,
	})
	if err != nil {
		log.Error(c, "settings.save.fail", err, nil)
		c.Status(fiber.StatusInternalServerError)
		return render(c, "settings", fiber.Map{
			"Title": "Settings",
			"S":     h.Settings.Get(c.UserContext()),
			"Err":   "Could not save settings. Please retry.",
		})
	}
	log.Audit(c, "settings.save", map[string]any{
		"notify_days":   saved.NotifyDays,
		"notifications": saved.EnableNotifications,
		"auto_delete":   saved.EnableAutoDelete,
	})
	return c.Redirect("/settings?saved=1")
}
