package services

import (
	"context"
	"net/http"

	apperrors "github.com/shoppyglobe/shoppyglobe-api/errors"
	"github.com/shoppyglobe/shoppyglobe-api/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductStore interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type ProductService struct {
	products ProductStore
	cache    *CacheManager
	logger   *zap.Logger
}

func NewProductService(products ProductStore, cache *CacheManager, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	if cached, ok := s.cache.GetProductList(ctx); ok {
		return cached, nil
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch products", err)
	}

	s.cache.SetProductListAsync(products)
	return products, nil
}

// Get fetches a single product. A malformed id is indistinguishable from a
// missing product: both are NotFound.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrProductNotFound
	}

	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch product", err)
	}
	if product == nil {
		return nil, apperrors.ErrProductNotFound
	}

	s.cache.SetProductAsync(product)
	return product, nil
}
