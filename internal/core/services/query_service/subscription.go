package query_service

// Subscription - подписка одного потребителя на запись кэша.
// Канал Updates конфлируется: хранится только последний снимок,
// медленный потребитель не блокирует хранилище.
type Subscription struct {
	store    *Store
	key      string
	id       uint64
	selectFn SelectFunc
	updates  chan Snapshot
	closed   bool
}

func (s *Subscription) Key() string {
	return s.key
}

// Snapshot возвращает текущее состояние записи с учетом проекции подписки
func (s *Subscription) Snapshot() Snapshot {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	e := s.store.lookupLocked(s.key)
	if e == nil {
		return Snapshot{Status: StatusPending}
	}

	return e.snapshotLocked(s.selectFn)
}

func (s *Subscription) Updates() <-chan Snapshot {
	return s.updates
}

// Close отписывает потребителя; последняя отписка останавливает поллинг
// и переводит запись в окно удержания
func (s *Subscription) Close() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.store.unsubscribeLocked(s.key, s.id)
}

// pushLocked заменяет непрочитанный снимок последним
func (s *Subscription) pushLocked(snap Snapshot) {
	select {
	case <-s.updates:
	default:
	}

	select {
	case s.updates <- snap:
	default:
	}
}
