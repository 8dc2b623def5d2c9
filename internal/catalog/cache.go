package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache in front of the Store. A miss is reported
// as ok=false with a nil error.
//
// Fills carry the generation observed before the Store was read. Invalidate
// bumps the generation, so a fill that raced a mutation is discarded instead
// of caching the document the mutation replaced.
type Cache interface {
	Generation(ctx context.Context) (int64, error)
	List(ctx context.Context) (ps []Product, ok bool, err error)
	SetList(ctx context.Context, gen int64, ps []Product) error
	Product(ctx context.Context, id string) (p Product, ok bool, err error)
	SetProduct(ctx context.Context, gen int64, p Product) error
	Invalidate(ctx context.Context, ids ...string) error
}

type RedisCache struct{ RDB *redis.Client }

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1].
var setIfGeneration = redis.NewScript(`
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.RDB.Get(ctx, redisx.KeyCatalogGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) List(ctx context.Context) ([]Product, bool, error) {
	var ps []Product
	ok, err := c.get(ctx, redisx.KeyProductList, &ps)
	return ps, ok, err
}

func (c *RedisCache) SetList(ctx context.Context, gen int64, ps []Product) error {
	return c.set(ctx, gen, redisx.KeyProductList, ps)
}

func (c *RedisCache) Product(ctx context.Context, id string) (Product, bool, error) {
	var p Product
	ok, err := c.get(ctx, fmt.Sprintf(redisx.KeyProduct, id), &p)
	return p, ok, err
}

func (c *RedisCache) SetProduct(ctx context.Context, gen int64, p Product) error {
	return c.set(ctx, gen, fmt.Sprintf(redisx.KeyProduct, p.ID), p)
}

// Invalidate bumps the generation, then drops the list and the given
// product keys.
func (c *RedisCache) Invalidate(ctx context.Context, ids ...string) error {
	keys := []string{redisx.KeyProductList}
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf(redisx.KeyProduct, id))
	}
	_, err := c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, redisx.KeyCatalogGeneration)
		p.Del(ctx, keys...)
		return nil
	})
	return err
}

// Purge drops every cached catalog document. Used after bulk rewrites that
// bypass the Service, such as seeding.
func (c *RedisCache) Purge(ctx context.Context) error {
	var ids []string
	prefix := fmt.Sprintf(redisx.KeyProduct, "")
	iter := c.RDB.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(prefix):])
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Invalidate(ctx, ids...)
}

func (c *RedisCache) get(ctx context.Context, key string, out any) (bool, error) {
	b, err := c.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, gen int64, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	keys := []string{redisx.KeyCatalogGeneration, key}
	return setIfGeneration.Run(ctx, c.RDB, keys,
		strconv.FormatInt(gen, 10), b, redisx.TTLCatalog.Milliseconds()).Err()
}
