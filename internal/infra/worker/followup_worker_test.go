package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-cursos/internal/infra/worker"
)

// fakeSweeper registra quando cada varredura começa e acusa sobreposição.
type fakeSweeper struct {
	mu        sync.Mutex
	starts    []time.Time
	running   bool
	overlap   bool
	sweepTime time.Duration
}

func (f *fakeSweeper) Execute(ctx context.Context) error {
	f.mu.Lock()
	if f.running {
		f.overlap = true
	}
	f.running = true
	f.starts = append(f.starts, time.Now())
	f.mu.Unlock()

	time.Sleep(f.sweepTime)

	f.mu.Lock()
	f.running = false
	f.mu.Unlock()
	return nil
}

func (f *fakeSweeper) snapshot() ([]time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.starts...), f.overlap
}

func TestFollowUpWorkerRunsImmediatelyAndOnInterval(t *testing.T) {
	sweeper := &fakeSweeper{}
	w := worker.NewFollowUpWorker(sweeper, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(180 * time.Millisecond)
	cancel()
	<-done

	starts, overlap := sweeper.snapshot()

	// Uma varredura imediata + as dos ticks
	assert.GreaterOrEqual(t, len(starts), 3)
	assert.False(t, overlap)

	// Duas varreduras nunca começam mais perto que o intervalo (a primeira
	// imediata conta como a varredura do instante zero)
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		assert.GreaterOrEqual(t, gap, 45*time.Millisecond, "varreduras %d e %d muito próximas: %s", i-1, i, gap)
	}
}

func TestFollowUpWorkerSlowSweepNeverOverlaps(t *testing.T) {
	// Varredura mais lenta que o tick: os ticks atrasam, nunca sobrepõem
	sweeper := &fakeSweeper{sweepTime: 60 * time.Millisecond}
	w := worker.NewFollowUpWorker(sweeper, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(250 * time.Millisecond)
	cancel()
	<-done

	starts, overlap := sweeper.snapshot()
	assert.False(t, overlap)
	assert.GreaterOrEqual(t, len(starts), 2)
}

func TestFollowUpWorkerStopsOnCancel(t *testing.T) {
	sweeper := &fakeSweeper{}
	w := worker.NewFollowUpWorker(sweeper, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker não parou depois do cancel")
	}

	before, _ := sweeper.snapshot()
	time.Sleep(50 * time.Millisecond)
	after, _ := sweeper.snapshot()
	assert.Equal(t, len(before), len(after), "varredura depois do cancel")
}

func TestFollowUpWorkerDefaultInterval(t *testing.T) {
	// Intervalo inválido cai no default de 60s
	w := worker.NewFollowUpWorker(&fakeSweeper{}, 0)
	assert.NotNil(t, w)
}
