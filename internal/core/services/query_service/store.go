package query_service

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

// Store - процессное хранилище результатов асинхронных чтений.
// Записи с подписчиками живут в entries; после последней отписки запись
// переезжает в detached (LRU фиксированного размера - окно удержания),
// откуда повторная подписка поднимает ее обратно вместе с данными.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	detached *lru.Cache[string, *entry]
	flight   singleflight.Group
	logger   out.LoggerPort
	nextID   uint64

	// Подменяется в тестах
	now func() time.Time
}

func NewStore(cfg *config.Config, logger out.LoggerPort) (*Store, error) {
	detached, err := lru.New[string, *entry](cfg.Cache.DetachedSize)
	if err != nil {
		logger.Error("query.store.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.DetachedSize,
		})
		return nil, err
	}

	return &Store{
		entries:  make(map[string]*entry),
		detached: detached,
		logger:   logger.WithModule("QueryStore"),
		now:      time.Now,
	}, nil
}

// Subscribe регистрирует подписчика на ключ и при необходимости запускает
// запрос: запись отсутствует, инвалидирована или устарела. Параллельные
// подписки на один ключ делят один сетевой вызов.
func (s *Store) Subscribe(key string, fetch FetchFunc, opts Options) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.reviveLocked(key)
	if e == nil {
		e = newEntry(key)
		s.entries[key] = e
	}

	e.fetch = fetch
	e.opts.StaleAfter = opts.StaleAfter
	e.opts.PollInterval = opts.PollInterval
	e.opts.Enabled = opts.Enabled

	s.nextID++
	sub := &Subscription{
		store:    s,
		key:      key,
		id:       s.nextID,
		selectFn: opts.Select,
		updates:  make(chan Snapshot, 1),
	}
	e.subscribers[sub.id] = sub

	if opts.PollInterval > 0 && e.pollStop == nil {
		s.startPollingLocked(e)
	}

	if opts.Enabled && e.needsFetchLocked(s.now()) {
		s.launchFetchLocked(e, false)
	}

	return sub
}

// Invalidate помечает ключи устаревшими; записи с активными подписчиками
// перезапрашиваются сразу. Пометка происходит синхронно, до возврата.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		e := s.lookupLocked(key)
		if e == nil {
			continue
		}

		e.invalid = true
		s.logger.Debug("query.invalidate", out.LogFields{
			"key":         key,
			"subscribers": len(e.subscribers),
		})

		if len(e.subscribers) > 0 && e.opts.Enabled && e.fetch != nil {
			s.launchFetchLocked(e, true)
		}
	}
}

// SetData записывает заведомо актуальное значение без сетевого вызова.
// Используется, когда ответ мутации уже содержит обновленную сущность.
// Значение перекрывает любой запрос, находящийся в полете.
func (s *Store) SetData(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLocked(key)
	if e == nil {
		e = newEntry(key)
		s.detached.Add(key, e)
	}

	e.fetchSeq++
	e.appliedSeq = e.fetchSeq
	e.data = value
	e.hasData = true
	e.status = StatusSuccess
	e.err = nil
	e.fetchedAt = s.now()
	e.invalid = false

	s.logger.Debug("query.set_data", out.LogFields{
		"key": key,
	})

	s.notifyLocked(e)
}

// Refetch принудительно перезапрашивает ключ, игнорируя окно свежести
func (s *Store) Refetch(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLocked(key)
	if e == nil || e.fetch == nil || !e.opts.Enabled {
		return
	}

	s.launchFetchLocked(e, true)
}

// Peek возвращает сырое закэшированное значение без подписки и без запроса
func (s *Store) Peek(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLocked(key)
	if e == nil || !e.hasData {
		return nil, false
	}
	return e.data, true
}

func (s *Store) lookupLocked(key string) *entry {
	if e, exists := s.entries[key]; exists {
		return e
	}
	if e, exists := s.detached.Get(key); exists {
		return e
	}
	return nil
}

// reviveLocked поднимает запись из окна удержания обратно в активные
func (s *Store) reviveLocked(key string) *entry {
	if e, exists := s.entries[key]; exists {
		return e
	}
	if e, exists := s.detached.Get(key); exists {
		s.detached.Remove(key)
		s.entries[key] = e
		return e
	}
	return nil
}

func (s *Store) unsubscribeLocked(key string, id uint64) {
	e, exists := s.entries[key]
	if !exists {
		return
	}

	delete(e.subscribers, id)
	if len(e.subscribers) > 0 {
		return
	}

	s.stopPollingLocked(e)
	delete(s.entries, key)
	s.detached.Add(key, e)
}

// launchFetchLocked инициирует запрос. Если по ключу уже есть запрос в
// полете, новый не запускается (де-дупликация), кроме принудительного
// перезапроса: тогда штамп сбрасывает результат старого запроса.
func (s *Store) launchFetchLocked(e *entry, force bool) {
	if e.pending > 0 && !force {
		return
	}
	if force {
		s.flight.Forget(e.key)
	}

	e.fetchSeq++
	seq := e.fetchSeq
	e.pending++
	fetch := e.fetch

	go s.runFetch(e.key, seq, fetch)
}

func (s *Store) runFetch(key string, seq uint64, fetch FetchFunc) {
	value, err, _ := s.flight.Do(key, func() (interface{}, error) {
		return fetch(context.Background())
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLocked(key)
	if e == nil {
		// Запись вытеснена из окна удержания - результат никуда не пишем
		s.logger.Debug("query.fetch.dropped", out.LogFields{
			"key": key,
		})
		return
	}

	e.pending--

	if seq < e.appliedSeq {
		// Устаревший ответ: после старта этого запроса уже применен
		// результат более позднего
		s.logger.Debug("query.fetch.discarded", out.LogFields{
			"key":        key,
			"seq":        seq,
			"appliedSeq": e.appliedSeq,
		})
		return
	}
	e.appliedSeq = seq

	if err != nil {
		// Прошлые данные остаются видимыми: stale-while-revalidate
		e.status = StatusError
		e.err = err
		s.logger.Warn("query.fetch.failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
	} else {
		e.data = value
		e.hasData = true
		e.status = StatusSuccess
		e.err = nil
		e.fetchedAt = s.now()
		e.invalid = false
		s.logger.Debug("query.fetch.success", out.LogFields{
			"key": key,
		})
	}

	s.notifyLocked(e)
}

func (s *Store) notifyLocked(e *entry) {
	for _, sub := range e.subscribers {
		sub.pushLocked(e.snapshotLocked(sub.selectFn))
	}
}
