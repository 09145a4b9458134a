package workers

import (
	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/otp"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles every background worker the service runs: currently
// only the one-time-code janitor.
func NewWorkers(registry otp.Registry, cfg config.OTP, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newOTPJanitor(registry, cfg.SweepInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
