package query_service

import (
	"context"

	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

// MutationFunc выполняет операцию записи на бэкенде
type MutationFunc func(ctx context.Context, payload interface{}) (interface{}, error)

// OnSuccessFunc вызывается после успешной записи. Допустимые побочные
// эффекты - инвалидация ключей и запись известного значения через SetData;
// оба завершаются до того, как Execute вернет результат вызывающему.
type OnSuccessFunc func(ctx context.Context, result interface{}, payload interface{})

// Mutation - именованная операция записи, объявляющая, какие записи кэша
// перестают быть актуальными после ее успеха
type Mutation struct {
	name      string
	store     *Store
	run       MutationFunc
	onSuccess OnSuccessFunc
	logger    out.LoggerPort
}

func (s *Store) NewMutation(name string, run MutationFunc, onSuccess OnSuccessFunc) *Mutation {
	return &Mutation{
		name:      name,
		store:     s,
		run:       run,
		onSuccess: onSuccess,
		logger:    s.logger.WithModule("Mutation"),
	}
}

func (m *Mutation) Execute(ctx context.Context, payload interface{}) (interface{}, error) {
	result, err := m.run(ctx, payload)
	if err != nil {
		m.logger.Warn("mutation.failed", out.LogFields{
			"mutation": m.name,
			"error":    err.Error(),
		})
		return nil, err
	}

	if m.onSuccess != nil {
		m.onSuccess(ctx, result, payload)
	}

	m.logger.Debug("mutation.success", out.LogFields{
		"mutation": m.name,
	})

	return result, nil
}
