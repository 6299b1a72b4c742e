package erp

import (
	"github.com/smallbiznis/bizpulse/internal/erp/repository"
	"github.com/smallbiznis/bizpulse/internal/erp/service"
	"go.uber.org/fx"
)

var Module = fx.Module("erp.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
