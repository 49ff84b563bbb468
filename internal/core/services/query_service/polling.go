package query_service

import (
	"time"

	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

// Поллинг принадлежит хранилищу, а не подписчикам: один интервал на ключ,
// старт на первой подписке, остановка на последней отписке.

func (s *Store) startPollingLocked(e *entry) {
	stop := make(chan struct{})
	e.pollStop = stop
	interval := e.opts.PollInterval

	s.logger.Debug("query.poll.started", out.LogFields{
		"key":      e.key,
		"interval": interval.String(),
	})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.pollTick(e.key)
			}
		}
	}()
}

func (s *Store) stopPollingLocked(e *entry) {
	if e.pollStop == nil {
		return
	}

	close(e.pollStop)
	e.pollStop = nil

	s.logger.Debug("query.poll.stopped", out.LogFields{
		"key": e.key,
	})
}

// pollTick перезапрашивает ключ по расписанию независимо от свежести.
// Тик пропускается, если запрос уже в полете.
func (s *Store) pollTick(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[key]
	if !exists {
		return
	}
	if !e.opts.Enabled || e.fetch == nil || e.pending > 0 {
		return
	}

	s.launchFetchLocked(e, false)
}
