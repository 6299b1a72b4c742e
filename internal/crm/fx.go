package crm

import (
	"github.com/smallbiznis/bizpulse/internal/crm/repository"
	"github.com/smallbiznis/bizpulse/internal/crm/service"
	"go.uber.org/fx"
)

var Module = fx.Module("crm.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
