package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Reloader es lo que el actualizador necesita de la tabla
type Reloader interface {
	StartLoad(ctx context.Context)
}

// TableReloader recarga la tabla periódicamente. Cada recarga equivale a
// pulsar "Reload data": descarta el orden actual.
type TableReloader struct {
	interval    time.Duration
	table       Reloader
	log         *logrus.Logger
	isRunning   bool
	stopChan    chan struct{}
	mutex       sync.Mutex
	lastUpdated time.Time
}

// NewTableReloader crea el actualizador; no arranca hasta llamar a Start
func NewTableReloader(interval time.Duration, table Reloader, log *logrus.Logger) *TableReloader {
	return &TableReloader{
		interval: interval,
		table:    table,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Start inicia las recargas periódicas. No hace nada si ya está corriendo o
// si el intervalo no es positivo.
func (r *TableReloader) Start(ctx context.Context) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.isRunning || r.interval <= 0 {
		return
	}

	r.isRunning = true
	r.stopChan = make(chan struct{})
	stop := r.stopChan

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.reload(ctx)
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	r.log.WithField("interval", r.interval.String()).Info("Recarga periódica de la tabla iniciada")
}

// Stop detiene las recargas periódicas
func (r *TableReloader) Stop() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.isRunning {
		return
	}

	r.isRunning = false
	close(r.stopChan)
	r.log.Info("Recarga periódica de la tabla detenida")
}

func (r *TableReloader) reload(ctx context.Context) {
	r.table.StartLoad(ctx)

	r.mutex.Lock()
	r.lastUpdated = time.Now()
	r.mutex.Unlock()

	r.log.Debug("Recarga periódica lanzada")
}

// GetLastUpdated devuelve cuándo se lanzó la última recarga periódica
func (r *TableReloader) GetLastUpdated() time.Time {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.lastUpdated
}
