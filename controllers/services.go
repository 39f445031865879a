package controllers

import (
	"sync"

	"church-community-api/services"
)

// Shared lifecycle services. Built once on first use so they see the
// initialized config.DB and share the publication locks across handlers.
var (
	svcOnce         sync.Once
	publicationSvc  *services.PublicationService
	moderationSvc   *services.ModerationService
	enrichmentSvc   *services.EnrichmentService
	assetSvc        *services.AssetService
	notificationSvc *services.NotificationService
)

func ensureServices() {
	svcOnce.Do(func() {
		publicationSvc = services.NewPublicationService(nil)
		moderationSvc = services.NewModerationService(nil, publicationSvc, services.NewInvalidationService(nil))
		enrichmentSvc = services.NewEnrichmentService(nil, nil)
		assetSvc = services.NewAssetService(nil)
		notificationSvc = services.NewNotificationService(nil)
	})
}
