package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// IntentRepository keeps pending transfer intents in redis so they expire
// on their own and can be consumed atomically.
type IntentRepository struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewIntentRepository(cfg *config.Config, rdb *redis.Client) *IntentRepository {
	return &IntentRepository{
		cfg: cfg,
		rdb: rdb,
	}
}

func intentKey(id string) string {
	return "transfer_intent_" + id
}

func (r *IntentRepository) Save(intent *domain.TransferIntent, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	raw, err := json.Marshal(intent)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, intentKey(intent.ID), raw, ttl).Err()
}

// Get returns nil when the intent expired or was already consumed.
func (r *IntentRepository) Get(id string) (*domain.TransferIntent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	raw, err := r.rdb.Get(ctx, intentKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	return unmarshalIntent(raw)
}

// Take atomically removes and returns the intent; only one caller can win.
func (r *IntentRepository) Take(id string) (*domain.TransferIntent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	raw, err := r.rdb.GetDel(ctx, intentKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	return unmarshalIntent(raw)
}

func unmarshalIntent(raw string) (*domain.TransferIntent, error) {
	intent := &domain.TransferIntent{}
	if err := json.Unmarshal([]byte(raw), intent); err != nil {
		return nil, err
	}
	return intent, nil
}
