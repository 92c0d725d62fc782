package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/edsu-house/edsu-backend/api/responses"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/logger"
)

// Pinger checks that a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyCheck pairs a dependency name with its pinger for readiness
// reporting.
type DependencyCheck struct {
	Name   string
	Pinger Pinger
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each dependency with a short deadline and reports
// per-dependency status. Any failure yields a 503.
func HealthReady(logg *logger.Logger, checks ...DependencyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		healthy := true
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				logg.Warn(logg.WithFields(ctx, map[string]any{"dependency": check.Name, "error": err.Error()}), "readiness check failed")
				status[check.Name] = "unreachable"
				healthy = false
				continue
			}
			status[check.Name] = "ok"
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(status))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": status})
	}
}
