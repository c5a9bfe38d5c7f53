package services

import (
	"context"
	"log/slog"
	"time"

	"t20cli/internal/config"
	"t20cli/internal/dataset"
	"t20cli/internal/infrastructure"
)

// HealthService reports service liveness and dataset readiness
type HealthService struct {
	config *config.Config
	store  *dataset.Store
	logger *slog.Logger
	start  time.Time
}

// NewHealthService creates a new health service
func NewHealthService(cfg *config.Config, store *dataset.Store, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		config: cfg,
		store:  store,
		logger: logger.With(slog.String("component", "health_service")),
		start:  time.Now(),
	}
}

// HealthCheck reports the overall service health
func (s *HealthService) HealthCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"service":   infrastructure.ServiceName,
		"version":   infrastructure.ServiceVersion,
		"uptime":    time.Since(s.start).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"dataset": map[string]interface{}{
			"path":   s.config.GetCSVPath(),
			"cached": s.store.Cached(s.config.GetCSVPath()),
		},
	}
}

// ReadinessCheck loads the dataset if needed and reports whether the
// service can answer stats queries.
func (s *HealthService) ReadinessCheck(ctx context.Context) map[string]interface{} {
	table, err := s.store.Table(ctx, s.config.GetCSVPath())
	if err != nil {
		s.logger.ErrorContext(ctx, "readiness check failed",
			slog.String("error", err.Error()))
		return map[string]interface{}{
			"status": "not_ready",
			"error":  err.Error(),
		}
	}

	return map[string]interface{}{
		"status":     "ready",
		"deliveries": table.Len(),
		"loaded_at":  table.LoadedAt.UTC().Format(time.RFC3339),
	}
}

// LivenessCheck reports whether the process is responsive
func (s *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status": "alive",
	}
}

// Version reports the service version
func (s *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"service": infrastructure.ServiceName,
		"version": infrastructure.ServiceVersion,
	}
}
