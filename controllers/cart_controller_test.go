package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/shoppyglobe/shoppyglobe-api/errors"
	"github.com/shoppyglobe/shoppyglobe-api/middleware"
	"github.com/shoppyglobe/shoppyglobe-api/models"
)

// --- Mock Service ---

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.CartView, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*models.CartView, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, productID string) (*models.CartView, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartView), args.Error(1)
}

// --- Helpers ---

type allowVerifier struct{ userID string }

func (v allowVerifier) Verify(string) (string, error) { return v.userID, nil }

// newCartRouter mounts the cart routes behind the real auth guard, with a
// verifier that accepts any bearer token for the given user.
func newCartRouter(service CartService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewCartController(service)
	router := gin.New()
	protected := router.Group("/cart")
	protected.Use(middleware.RequireAuth(allowVerifier{userID: userID}))
	{
		protected.GET("", controller.GetCart)
		protected.POST("", controller.AddItem)
		protected.PUT("/:productId", controller.UpdateItem)
		protected.DELETE("/:productId", controller.RemoveItem)
	}
	return router
}

func authedRequest(method, path, payload string) *http.Request {
	var req *http.Request
	if payload != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer some-token")
	return req
}

func cartViewFor(userID string, items ...models.CartItemView) *models.CartView {
	uid, _ := primitive.ObjectIDFromHex(userID)
	if items == nil {
		items = []models.CartItemView{}
	}
	return &models.CartView{UserID: uid, Items: items}
}

// --- Tests ---

func TestCartRoutesRequireAuth(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID().Hex()

	cases := []struct {
		name   string
		method string
		path   string
	}{
		{"get cart", http.MethodGet, "/cart"},
		{"add item", http.MethodPost, "/cart"},
		{"update item", http.MethodPut, "/cart/" + productID},
		{"remove item", http.MethodDelete, "/cart/" + productID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockCartService)
			router := newCartRouter(mockService, userID)

			req, _ := http.NewRequest(tc.method, tc.path, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			// No header at all: rejected before the service is touched.
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			mockService.AssertNotCalled(t, "GetCart")
			mockService.AssertNotCalled(t, "AddItem")
			mockService.AssertNotCalled(t, "UpdateItem")
			mockService.AssertNotCalled(t, "RemoveItem")
		})
	}
}

func TestGetCartController(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	t.Run("Success - 200 with cart", func(t *testing.T) {
		mockService := new(MockCartService)
		productID := primitive.NewObjectID()
		mockService.On("GetCart", mock.Anything, userID).Return(cartViewFor(userID, models.CartItemView{
			ProductID: productID, Name: "Smart Watch", Price: 2499, Quantity: 2,
		}), nil).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/cart", ""))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Smart Watch")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - no cart yet - 404", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("GetCart", mock.Anything, userID).Return(nil, apperrors.ErrCartNotFound).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/cart", ""))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestAddItemController(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID().Hex()

	t.Run("Success - 200 with message and cart", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("AddItem", mock.Anything, userID, productID, 2).
			Return(cartViewFor(userID), nil).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		payload := `{"productId": "` + productID + `", "quantity": 2}`
		router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/cart", payload))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Product added to cart")
		assert.Contains(t, recorder.Body.String(), "cart")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - missing quantity - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		payload := `{"productId": "` + productID + `"}`
		router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/cart", payload))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "AddItem")
	})

	t.Run("Failure - unknown product - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("AddItem", mock.Anything, userID, productID, 2).
			Return(nil, apperrors.Validation("Product does not exist")).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		payload := `{"productId": "` + productID + `", "quantity": 2}`
		router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/cart", payload))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Product does not exist")
	})
}

func TestUpdateItemController(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID().Hex()

	t.Run("Success - 200", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("UpdateItem", mock.Anything, userID, productID, 5).
			Return(cartViewFor(userID), nil).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPut, "/cart/"+productID, `{"quantity": 5}`))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Cart updated")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - line not in cart - 404", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("UpdateItem", mock.Anything, userID, productID, 5).
			Return(nil, apperrors.ErrItemNotFound).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPut, "/cart/"+productID, `{"quantity": 5}`))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Failure - missing quantity - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodPut, "/cart/"+productID, `{}`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "UpdateItem")
	})
}

func TestRemoveItemController(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID().Hex()

	t.Run("Success - 200", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("RemoveItem", mock.Anything, userID, productID).
			Return(cartViewFor(userID), nil).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodDelete, "/cart/"+productID, ""))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Item removed")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - no cart - 404", func(t *testing.T) {
		mockService := new(MockCartService)
		mockService.On("RemoveItem", mock.Anything, userID, productID).
			Return(nil, apperrors.ErrCartNotFound).Once()

		router := newCartRouter(mockService, userID)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodDelete, "/cart/"+productID, ""))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
