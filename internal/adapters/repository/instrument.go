package repository

import (
	"context"
	"time"

	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/pkg/metrics"
)

// instrumented records latency and failures of every store call.
type instrumented struct {
	next    GameStore
	backend string
}

// Instrument wraps s so its operations show up in store metrics.
func Instrument(s GameStore, backend string) GameStore {
	return &instrumented{next: s, backend: backend}
}

func (i *instrumented) Load(ctx context.Context) (model.State, error) {
	start := time.Now()
	st, err := i.next.Load(ctx)
	metrics.RecordStoreOperation("load", i.backend, sinceMs(start), err)
	return st, err
}

func (i *instrumented) Save(ctx context.Context, st model.State) error {
	start := time.Now()
	err := i.next.Save(ctx, st)
	metrics.RecordStoreOperation("save", i.backend, sinceMs(start), err)
	return err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
