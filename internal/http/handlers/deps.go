package handlers

import (
	"time"

	"shelflife/internal/notify"
	"shelflife/internal/repos"
	"shelflife/internal/services"
	"shelflife/internal/store"
)

type Deps struct {
	Catalog       *services.CatalogService
	Settings      *repos.SettingsRepo
	Notifications *services.NotificationService

	DashboardHandler *DashboardHandler
	ProductHandler   *ProductHandler
	SearchHandler    *SearchHandler
	ExpiryHandler    *ExpiryHandler
	SettingsHandler  *SettingsHandler
	APIHandler       *APIHandler
}

// NewDeps wires repositories, services and handlers over one backend.
// loc is the zone date-only form input is read in.
func NewDeps(b store.Backend, sender notify.EmailSender, alerts *notify.AlertRenderer, loc *time.Location) *Deps {
	if loc == nil {
		loc = time.Local
	}
	prodRepo := repos.NewProductRepo(b)
	settingsRepo := repos.NewSettingsRepo(b)

	catalogSvc := services.NewCatalogService(prodRepo)
	notifySvc := services.NewNotificationService(catalogSvc, settingsRepo, sender, alerts)
	analyticsSvc := services.NewAnalyticsService(catalogSvc)
	exportSvc := services.NewExportService(catalogSvc)

	return &Deps{
		Catalog:       catalogSvc,
		Settings:      settingsRepo,
		Notifications: notifySvc,

		DashboardHandler: &DashboardHandler{Catalog: catalogSvc, Analytics: analyticsSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Loc: loc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		ExpiryHandler:    &ExpiryHandler{Catalog: catalogSvc, Checker: notifySvc},
		SettingsHandler:  &SettingsHandler{Settings: settingsRepo},
		APIHandler: &APIHandler{
			Catalog:   catalogSvc,
			Settings:  settingsRepo,
			Analytics: analyticsSvc,
			Export:    exportSvc,
			Loc:       loc,
		},
	}
}
