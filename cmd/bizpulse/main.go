package main

import (
	"github.com/smallbiznis/bizpulse/internal/clock"
	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/smallbiznis/bizpulse/internal/migration"
	"github.com/smallbiznis/bizpulse/internal/observability"
	"github.com/smallbiznis/bizpulse/internal/server"
	"github.com/smallbiznis/bizpulse/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		migration.Module,

		// Dashboard API
		server.Module,
	)
	app.Run()
}
