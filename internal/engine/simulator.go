package engine

import (
	"context"
	"sync"
	"time"

	"github.com/Maddesumit/synthetic-arb-engine/internal/monitoring/metrics"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

// simulator exercises the producer API while the market data pipeline does
// not exist yet, mirroring the placeholder activity loop the engine shipped
// with. It records a message and a latency sample every second and an
// opportunity every ten.
type simulator struct {
	registry *metrics.Registry
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func newSimulator(registry *metrics.Registry) *simulator {
	return &simulator{registry: registry}
}

func (s *simulator) start() {
	log := logger.WithComponent("simulator")
	log.Info().Msg("Activity simulator started")

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		counter := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				counter++
				if counter%10 == 0 {
					s.registry.RecordMessageProcessed()
					s.registry.RecordLatency(5.0 + float64(counter%10))

					if counter%100 == 0 {
						s.registry.RecordOpportunityDetected()
						log.Info().Int("counter", counter).Msg("Simulated opportunity detected")
					}
				}
			}
		}
	}()
}

func (s *simulator) stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	log := logger.WithComponent("simulator")
	log.Info().Msg("Activity simulator stopped")
}
