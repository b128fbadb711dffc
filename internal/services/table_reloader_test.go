package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingReloader struct {
	calls atomic.Int32
}

func (c *countingReloader) StartLoad(context.Context) {
	c.calls.Add(1)
}

func TestTableReloader_ReloadsPeriodically(t *testing.T) {
	table := &countingReloader{}
	reloader := NewTableReloader(10*time.Millisecond, table, newTestLogger())

	reloader.Start(context.Background())
	reloader.Start(context.Background())
	defer reloader.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for table.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected at least 2 reloads, got %d", table.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if reloader.GetLastUpdated().IsZero() {
		t.Error("Expected last update time to be set")
	}
}

func TestTableReloader_Stop(t *testing.T) {
	table := &countingReloader{}
	reloader := NewTableReloader(10*time.Millisecond, table, newTestLogger())

	reloader.Start(context.Background())
	reloader.Stop()
	reloader.Stop()

	// Un tick en vuelo puede terminar justo después de Stop
	time.Sleep(20 * time.Millisecond)
	calls := table.calls.Load()
	time.Sleep(50 * time.Millisecond)

	if got := table.calls.Load(); got != calls {
		t.Errorf("Expected no reloads after Stop, got %d more", got-calls)
	}
}

func TestTableReloader_Disabled(t *testing.T) {
	table := &countingReloader{}
	reloader := NewTableReloader(0, table, newTestLogger())

	reloader.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	reloader.Stop()

	if got := table.calls.Load(); got != 0 {
		t.Errorf("Expected no reloads with a zero interval, got %d", got)
	}
}

func TestTableReloader_ContextCancel(t *testing.T) {
	table := &countingReloader{}
	reloader := NewTableReloader(10*time.Millisecond, table, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	reloader.Start(ctx)
	cancel()

	time.Sleep(20 * time.Millisecond)
	calls := table.calls.Load()
	time.Sleep(50 * time.Millisecond)

	if got := table.calls.Load(); got != calls {
		t.Errorf("Expected no reloads after cancel, got %d more", got-calls)
	}
	reloader.Stop()
}
