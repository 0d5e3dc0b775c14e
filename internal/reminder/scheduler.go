package reminder

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emasjid/gateway/internal/model"
)

// Scheduler fires the daily reminder broadcast once per day at a fixed
// local hour, covering the next day's roster.
type Scheduler struct {
	hour        int
	broadcaster *Broadcaster

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	lastRun model.CalendarDate
	now     func() time.Time
}

func NewScheduler(hour int, broadcaster *Broadcaster) *Scheduler {
	return &Scheduler{
		hour:        hour,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running.Store(true)

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		log.Info().Int("hour", s.hour).Msg("reminder scheduler started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder scheduler stopping")
				return
			case <-ticker.C:
				s.safeTick()
			}
		}
	}()

	return true
}

func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return false
	}

	s.cancel()
	<-s.done
	s.running.Store(false)

	log.Info().Msg("reminder scheduler stopped")
	return true
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("reminder tick panic recovered")
		}
	}()

	now := s.now()
	today := model.DateOf(now)
	if now.Hour() != s.hour || s.lastRun == today {
		return
	}
	s.lastRun = today

	tomorrow := model.DateOf(now.AddDate(0, 0, 1))
	start := time.Now()
	results, err := s.broadcaster.BroadcastFor(tomorrow)
	if err != nil {
		log.Error().Err(err).Msg("reminder broadcast failed")
		return
	}
	log.Info().
		Int("recipients", len(results)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("reminder broadcast completed")
}
