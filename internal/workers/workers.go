package workers

import (
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds every worker enabled by cfg.
func NewWorkers(cfg config.Workers, logger *logger.Logger) (*Workers, error) {
	janitor, err := NewUploadJanitor(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Workers{workers: []Worker{janitor}}, nil
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
