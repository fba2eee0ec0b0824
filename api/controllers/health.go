package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/pkg/config"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/logger"
	"github.com/growly/growly-web/pkg/types"
)

const readyTimeout = 2 * time.Second

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Growly-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.Health{Status: "live", Env: cfg.App.Env})
	}
}

// HealthReady pings the database and, when configured, redis. Nil pingers
// are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Growly-Env", cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for name, p := range deps {
			if p == nil {
				continue
			}
			if err := p.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, types.Health{Status: "ready", Env: cfg.App.Env})
	}
}
