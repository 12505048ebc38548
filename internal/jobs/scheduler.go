package jobs

import (
	"context"
	"fmt"
	"time"

	"pet-adoption-hub/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler envuelve cron con recover y sin solapamiento entre ejecuciones del mismo job.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, kv ...any) {
	l.log.Debug(msg, kvFields(kv))
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	f := kvFields(kv)
	f["error"] = err
	l.log.Error(msg, f)
}

func kvFields(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			out[k] = kv[i+1]
		}
	}
	return out
}

func NewScheduler(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(map[string]any{"component": "scheduler"})
	cl := cronLogger{log: log}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return &Scheduler{cron: c, log: log}
}

// Add registra un job con expresión cron estándar de 5 campos.
func (s *Scheduler) Add(name, spec string, job cron.Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.log.Info("job scheduled", map[string]any{"job": name, "schedule": spec})
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop deja de disparar y espera a que terminen los jobs en curso (o a ctx).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out", nil)
	}
}
