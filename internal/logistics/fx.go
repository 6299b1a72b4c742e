package logistics

import (
	"github.com/smallbiznis/bizpulse/internal/logistics/repository"
	"github.com/smallbiznis/bizpulse/internal/logistics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("logistics.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
