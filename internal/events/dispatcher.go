package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultQueueSize = 100
	publishTimeout   = 5 * time.Second
)

// Dispatcher entrega eventos de forma assíncrona e best-effort.
// Falha de publicação nunca volta para o use case.
type Dispatcher struct {
	sinks []Publisher
	queue chan Event
	log   *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(log *slog.Logger, size int, sinks ...Publisher) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}

	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, size),
		log:   log,
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			if err := sink.Publish(ctx, ev); err != nil {
				d.log.Error("event publish failed",
					"event_id", ev.ID.String(),
					"type", ev.Type,
					"error", err,
				)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Emit(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos (nunca quebrar API)
		d.log.Warn("event queue full, dropping event", "type", ev.Type)
	}
}

// Close drena a fila e espera o worker; chamadas repetidas são seguras.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
