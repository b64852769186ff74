package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jhoicas/caja-api/internal/application/catalog"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var _ catalog.BarcodeCache = (*RedisBarcodeCache)(nil)

const keyPrefix = "caja:barcode:"

// cachedProduct forma serializada del producto en Redis.
type cachedProduct struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	UnitType  string          `json:"unit_type"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RedisBarcodeCache caché barcode -> producto sobre Redis.
type RedisBarcodeCache struct {
	client *redis.Client
}

// NewRedisBarcodeCache crea el cliente. No se conecta hasta el primer uso (ver Ping).
func NewRedisBarcodeCache(addr string, password string, db int) *RedisBarcodeCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisBarcodeCache{client: client}
}

// NewRedisBarcodeCacheFromClient usa un cliente ya construido (tests, clientes compartidos).
func NewRedisBarcodeCacheFromClient(client *redis.Client) *RedisBarcodeCache {
	return &RedisBarcodeCache{client: client}
}

func (c *RedisBarcodeCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisBarcodeCache) Close() error {
	return c.client.Close()
}

func (c *RedisBarcodeCache) Get(ctx context.Context, barcode string) (*entity.Product, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+barcode).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cp cachedProduct
	if err := json.Unmarshal(val, &cp); err != nil {
		return nil, false, err
	}
	return &entity.Product{
		ID:        cp.ID,
		Barcode:   cp.Barcode,
		Name:      cp.Name,
		UnitType:  cp.UnitType,
		Price:     cp.Price,
		CreatedAt: cp.CreatedAt,
		UpdatedAt: cp.UpdatedAt,
	}, true, nil
}

func (c *RedisBarcodeCache) Set(ctx context.Context, p *entity.Product, ttl time.Duration) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(cachedProduct{
		ID:        p.ID,
		Barcode:   p.Barcode,
		Name:      p.Name,
		UnitType:  p.UnitType,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+p.Barcode, payload, ttl).Err()
}

func (c *RedisBarcodeCache) Delete(ctx context.Context, barcode string) error {
	return c.client.Del(ctx, keyPrefix+barcode).Err()
}
