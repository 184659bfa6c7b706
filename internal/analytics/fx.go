package analytics

import (
	"github.com/smallbiznis/storefront/internal/analytics/repository"
	"github.com/smallbiznis/storefront/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
