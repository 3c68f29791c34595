package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/edvin/catalog/internal/model"
)

const (
	redisIndexKey = "products:index"
	redisSeqKey   = "products:seq"
)

// raiseSeq lifts the ID sequence to at least ARGV[1].
var raiseSeq = redis.NewScript(`
local cur = tonumber(redis.call("GET", KEYS[1]) or "0")
local want = tonumber(ARGV[1])
if cur < want then
  redis.call("SET", KEYS[1], want)
end
return 0
`)

// RedisStore keeps each product as a JSON value under products:{id}. A sorted
// set scored by ID gives the listing order; INCR on products:seq hands out IDs.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func productKey(id int64) string {
	return "products:" + strconv.FormatInt(id, 10)
}

func (s *RedisStore) FindAll(ctx context.Context) ([]model.Product, error) {
	ids, err := s.client.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}

	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = "products:" + id
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a value; skip rather than fail the listing.
			continue
		}
		var p model.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", ids[i], err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id int64) (*model.Product, bool, error) {
	raw, err := s.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get product %d: %w", id, err)
	}

	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, fmt.Errorf("decode product %d: %w", id, err)
	}
	return &p, true, nil
}

func (s *RedisStore) Save(ctx context.Context, p *model.Product) (*model.Product, error) {
	saved := *p
	if saved.ID == 0 {
		id, err := s.client.Incr(ctx, redisSeqKey).Result()
		if err != nil {
			return nil, fmt.Errorf("allocate product id: %w", err)
		}
		saved.ID = id
	} else if err := raiseSeq.Run(ctx, s.client, []string{redisSeqKey}, saved.ID).Err(); err != nil {
		return nil, fmt.Errorf("advance product id sequence: %w", err)
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("encode product %d: %w", saved.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, productKey(saved.ID), data, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(saved.ID), Member: strconv.FormatInt(saved.ID, 10)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save product %d: %w", saved.ID, err)
	}
	return &saved, nil
}

func (s *RedisStore) DeleteByID(ctx context.Context, id int64) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, productKey(id))
		pipe.ZRem(ctx, redisIndexKey, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
