package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shoppyglobe/shoppyglobe-api/models"
	"go.uber.org/zap"
)

const (
	productCachePrefix  = "product:detail:"
	productListCacheKey = "products:all"

	// The catalog is read-only through the API, so a short TTL is the only
	// invalidation the cache needs.
	DefaultCacheTTL = 5 * time.Minute
)

// CacheManager handles Redis caching for the product catalog. A nil
// CacheManager is valid and behaves as a permanent cache miss.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		redis: client,
		ttl:   DefaultCacheTTL,
	}
}

func (cm *CacheManager) GetProductList(ctx context.Context) ([]models.Product, bool) {
	if cm == nil {
		return nil, false
	}
	cachedData, err := cm.redis.Get(ctx, productListCacheKey).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cachedData), &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches the product list without blocking the request.
func (cm *CacheManager) SetProductListAsync(products []models.Product) {
	if cm == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(products)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, productListCacheKey, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

func (cm *CacheManager) GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	if cm == nil {
		return nil, false
	}
	cachedData, err := cm.redis.Get(ctx, productCachePrefix+id).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cachedData), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

func (cm *CacheManager) SetProductAsync(product *models.Product) {
	if cm == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(product)
		if err != nil {
			return
		}
		key := productCachePrefix + product.ID.Hex()
		if err := cm.redis.Set(bgCtx, key, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err))
		}
	}()
}
