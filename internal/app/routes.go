package app

import (
	"github.com/meridian-institute/core/internal/modules/aggregate"
	"github.com/meridian-institute/core/internal/modules/contact"
	"github.com/meridian-institute/core/internal/modules/directory"
	"github.com/meridian-institute/core/internal/modules/event"
	"github.com/meridian-institute/core/internal/modules/health"
	"github.com/meridian-institute/core/internal/modules/policy"
	"github.com/meridian-institute/core/internal/modules/profile"
	"github.com/meridian-institute/core/internal/modules/publication"
	"github.com/meridian-institute/core/internal/modules/search"
	"github.com/meridian-institute/core/internal/modules/siteconfig"
	"github.com/meridian-institute/core/internal/modules/taxonomy"
	"github.com/meridian-institute/core/internal/modules/upload"
	"github.com/meridian-institute/core/internal/pkg/metrics"
)

func (a *App) registerRoutes() {
	a.router.GET("/metrics", metrics.Handler())

	api := a.router.Group("/api/v1")

	health.RegisterRoutes(api, a.db, a.rc)

	pubSvc := publication.NewService(a.db)
	publication.NewHandler(pubSvc).RegisterRoutes(api)

	policy.NewHandler(policy.NewService(a.db), policy.NewCaseStudyService(a.db)).RegisterRoutes(api)

	eventSvc := event.NewService(a.db)
	event.NewHandler(eventSvc).RegisterRoutes(api)

	directory.NewHandler(directory.NewService(a.db)).RegisterRoutes(api)
	taxonomy.NewHandler(taxonomy.NewService(a.db)).RegisterRoutes(api)
	contact.NewHandler(contact.NewService(a.db, a.rc)).RegisterRoutes(api)
	profile.NewHandler(profile.NewService(a.db)).RegisterRoutes(api)
	siteconfig.NewHandler(a.db).RegisterRoutes(api)

	aggregate.NewHandler(aggregate.NewService(a.db, pubSvc, eventSvc)).RegisterRoutes(api)
	search.NewHandler(search.NewService(a.db)).RegisterRoutes(api)
	upload.NewHandler(a.uploader).RegisterRoutes(api)
}
