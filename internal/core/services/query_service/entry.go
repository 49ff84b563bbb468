package query_service

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// FetchFunc выполняет сетевой запрос для одного ключа
type FetchFunc func(ctx context.Context) (interface{}, error)

// SelectFunc - чистая проекция сырого значения записи для одной подписки
type SelectFunc func(interface{}) interface{}

type Options struct {
	// Окно свежести: в пределах окна повторная подписка не делает запрос.
	// Ноль означает, что данные устаревают сразу.
	StaleAfter time.Duration

	// Период фонового перезапроса, пока есть хотя бы один подписчик
	PollInterval time.Duration

	// Пока false, запросы по ключу не выполняются
	Enabled bool

	Select SelectFunc
}

func DefaultOptions() Options {
	return Options{Enabled: true}
}

// Snapshot - наблюдаемое состояние записи для одного подписчика
type Snapshot struct {
	Data      interface{}
	Status    Status
	Err       error
	FetchedAt time.Time
	Fetching  bool
}

func (s Snapshot) IsLoading() bool {
	return s.Status == StatusPending && s.Fetching
}

func (s Snapshot) IsError() bool {
	return s.Status == StatusError
}

type entry struct {
	key   string
	fetch FetchFunc
	opts  Options

	data      interface{}
	hasData   bool
	err       error
	status    Status
	fetchedAt time.Time

	// Явная инвалидация: следующий доступ обязан сделать запрос
	invalid bool

	// Порядковые штампы запросов: применяется только результат
	// последнего инициированного запроса
	fetchSeq   uint64
	appliedSeq uint64
	pending    int

	subscribers map[uint64]*Subscription
	pollStop    chan struct{}
}

func newEntry(key string) *entry {
	return &entry{
		key:         key,
		status:      StatusPending,
		subscribers: make(map[uint64]*Subscription),
	}
}

func (e *entry) needsFetchLocked(now time.Time) bool {
	if e.invalid {
		return true
	}
	if !e.hasData {
		return e.pending == 0
	}
	return now.Sub(e.fetchedAt) > e.opts.StaleAfter
}

func (e *entry) snapshotLocked(selectFn SelectFunc) Snapshot {
	data := e.data
	if e.hasData && selectFn != nil {
		data = selectFn(e.data)
	}

	return Snapshot{
		Data:      data,
		Status:    e.status,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		Fetching:  e.pending > 0,
	}
}
