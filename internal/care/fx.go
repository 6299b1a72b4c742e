package care

import (
	"github.com/smallbiznis/bizpulse/internal/care/repository"
	"github.com/smallbiznis/bizpulse/internal/care/service"
	"go.uber.org/fx"
)

var Module = fx.Module("care.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
