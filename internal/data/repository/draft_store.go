package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spa-booking/internal/data/entity"
	"spa-booking/pkg/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DraftStore keeps each customer's in-progress selection. It is an explicit,
// injectable store keyed by customer id, backed by redis; tests swap in an
// in-memory implementation.
type DraftStore interface {
	Get(ctx context.Context, customerID uuid.UUID) (*entity.Draft, error)
	Save(ctx context.Context, draft *entity.Draft) error
	Delete(ctx context.Context, customerID uuid.UUID) error
}

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewDraftStore(client *redis.Client, ttl time.Duration, log *zap.Logger) DraftStore {
	return &redisDraftStore{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("repository", "draft")),
	}
}

func (s *redisDraftStore) Get(ctx context.Context, customerID uuid.UUID) (*entity.Draft, error) {
	raw, err := s.client.Get(ctx, cache.CartKey(customerID.String())).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to read draft",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("read draft for customer %s: %w", customerID.String(), err)
	}

	var draft entity.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		// A corrupt draft is unrecoverable session state, not data: drop it
		// so the customer starts a fresh one instead of being stuck.
		s.log.Warn("Discarding corrupt draft",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		_ = s.client.Del(ctx, cache.CartKey(customerID.String())).Err()
		return nil, nil
	}

	return &draft, nil
}

func (s *redisDraftStore) Save(ctx context.Context, draft *entity.Draft) error {
	draft.UpdatedAt = time.Now()

	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft for customer %s: %w", draft.CustomerID.String(), err)
	}

	if err := s.client.Set(ctx, cache.CartKey(draft.CustomerID.String()), raw, s.ttl).Err(); err != nil {
		s.log.Error("Failed to save draft",
			zap.Error(err),
			zap.String("customer_id", draft.CustomerID.String()),
		)
		return fmt.Errorf("save draft for customer %s: %w", draft.CustomerID.String(), err)
	}

	return nil
}

func (s *redisDraftStore) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := s.client.Del(ctx, cache.CartKey(customerID.String())).Err(); err != nil {
		s.log.Error("Failed to delete draft",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return fmt.Errorf("delete draft for customer %s: %w", customerID.String(), err)
	}
	return nil
}
