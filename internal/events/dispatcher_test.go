package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mester-scheduler/internal/logger"
)

type sinkFunc func(ctx context.Context, ev Event) error

func (f sinkFunc) Publish(ctx context.Context, ev Event) error { return f(ctx, ev) }

type collectSink struct {
	mu  sync.Mutex
	got []string
}

func (s *collectSink) Publish(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, ev.Type)
	return nil
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	a, b := &collectSink{}, &collectSink{}
	d := NewDispatcher(logger.Discard(), 10, a, b)

	d.Emit(New(ProposalAccepted, "proposal", 1, time.Now()))
	d.Emit(New(AppointmentCreated, "appointment", 2, time.Now()))

	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{ProposalAccepted, AppointmentCreated}, a.got)
	assert.Equal(t, a.got, b.got)
}

func TestDispatcher_FailingSinkDoesNotStopOthers(t *testing.T) {
	ok := &collectSink{}
	failing := sinkFunc(func(context.Context, Event) error { return errors.New("broker down") })
	d := NewDispatcher(logger.Discard(), 10, failing, ok)

	d.Emit(New(MessageSent, "message", 3, time.Now()))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{MessageSent}, ok.got)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	blocking := sinkFunc(func(context.Context, Event) error {
		<-release
		return nil
	})
	d := NewDispatcher(logger.Discard(), 1, blocking)

	// o worker fica preso no primeiro; a fila aceita só mais um
	for i := 0; i < 10; i++ {
		d.Emit(New(MessageSent, "message", uint(i), time.Now()))
	}

	close(release)
	require.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_EmitAfterCloseIsNoop(t *testing.T) {
	d := NewDispatcher(logger.Discard(), 1)
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Emit(New(MessageSent, "message", 1, time.Now()))
	})
}

func TestEventWith_DoesNotShareMaps(t *testing.T) {
	base := New(ProposalCreated, "proposal", 1, time.Now()).With("price", "100")
	derived := base.With("currency", "HUF")

	assert.Len(t, base.Payload, 1)
	assert.Len(t, derived.Payload, 2)
	assert.NotEqual(t, base.ID.String(), "")
}
