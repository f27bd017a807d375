package worker

import (
	"context"
	"log"
	"time"
)

// Sweeper é uma varredura de follow-up (o use case, nos testes um fake).
type Sweeper interface {
	Execute(ctx context.Context) error
}

// FollowUpWorker dispara a varredura num intervalo fixo de relógio.
// As varreduras nunca se sobrepõem: o tick seguinte só é lido depois que
// a anterior termina. Varredura lenta atrasa (e pode engolir) ticks.
type FollowUpWorker struct {
	sweeper      Sweeper
	tickInterval time.Duration
}

func NewFollowUpWorker(sweeper Sweeper, tickInterval time.Duration) *FollowUpWorker {
	if tickInterval <= 0 {
		tickInterval = 60 * time.Second
	}
	return &FollowUpWorker{
		sweeper:      sweeper,
		tickInterval: tickInterval,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log.Printf("🕒 Follow-up Worker iniciado (intervalo %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Follow-up Worker encerrado")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *FollowUpWorker) sweep(ctx context.Context) {
	if err := w.sweeper.Execute(ctx); err != nil {
		log.Printf("❌ Varredura de follow-up falhou: %v", err)
	}
}
