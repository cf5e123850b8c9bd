package services

import (
	"context"
	"net/http"

	apperrors "github.com/shoppyglobe/shoppyglobe-api/errors"
	"github.com/shoppyglobe/shoppyglobe-api/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CartStore interface {
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

// CartService owns the cart mutation rules: merge-add (never a duplicate line
// per product), replace-on-update, tolerant removal, and lazy cart creation on
// the first add.
//
// Every mutation is a read-modify-write against the store, which is not
// atomic on its own. Mutations for the same user are serialized behind a
// per-user lock so concurrent adds cannot overwrite each other's increments.
type CartService struct {
	carts    CartStore
	products ProductStore
	locks    *userLocks
	logger   *zap.Logger
}

func NewCartService(carts CartStore, products ProductStore, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		locks:    newUserLocks(),
		logger:   logger,
	}
}

// GetCart returns the user's cart with each line's product resolved to name
// and price for display. A user who has never added anything has no cart.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUserID(ctx, uid)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to fetch cart", err)
	}
	if cart == nil {
		return nil, apperrors.ErrCartNotFound
	}
	return s.buildView(ctx, cart), nil
}

// AddItem merges quantity into the existing line for the product, or appends
// a new line. The first add creates the cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.CartView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, apperrors.Validation("Quantity must be a positive integer")
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id")
	}

	// The product must exist before anything is written; otherwise a
	// dangling reference ends up in the cart.
	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to add to cart", err)
	}
	if product == nil {
		return nil, apperrors.Validation("Product does not exist")
	}

	s.locks.lock(userID)
	defer s.locks.unlock(userID)

	cart, err := s.carts.FindByUserID(ctx, uid)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to add to cart", err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: uid, Items: []models.CartItem{}}
	}

	if i := cart.FindItem(pid); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: pid, Quantity: quantity})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to add to cart", err)
	}

	s.logger.Debug("cart item added",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return s.buildView(ctx, cart), nil
}

// UpdateItem sets the line's quantity to exactly the given value.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*models.CartView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, apperrors.Validation("Quantity must be a positive integer")
	}

	s.locks.lock(userID)
	defer s.locks.unlock(userID)

	cart, err := s.carts.FindByUserID(ctx, uid)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update cart", err)
	}
	if cart == nil {
		return nil, apperrors.ErrCartNotFound
	}

	// A malformed product id cannot match any line, so it falls through to
	// the same NotFound as a missing one.
	pid, pidErr := primitive.ObjectIDFromHex(productID)
	i := -1
	if pidErr == nil {
		i = cart.FindItem(pid)
	}
	if i < 0 {
		return nil, apperrors.ErrItemNotFound
	}

	cart.Items[i].Quantity = quantity
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update cart", err)
	}
	return s.buildView(ctx, cart), nil
}

// RemoveItem removes the line for the product if present. Removing a line
// that is not there is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.CartView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	s.locks.lock(userID)
	defer s.locks.unlock(userID)

	cart, err := s.carts.FindByUserID(ctx, uid)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update cart", err)
	}
	if cart == nil {
		return nil, apperrors.ErrCartNotFound
	}

	// A malformed id matches nothing, which keeps removal a no-op.
	if pid, pidErr := primitive.ObjectIDFromHex(productID); pidErr == nil {
		newItems := cart.Items[:0:0]
		for _, item := range cart.Items {
			if item.ProductID != pid {
				newItems = append(newItems, item)
			}
		}
		cart.Items = newItems
		if cart.Items == nil {
			cart.Items = []models.CartItem{}
		}

		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, apperrors.New(http.StatusInternalServerError, "Failed to update cart", err)
		}
	}
	return s.buildView(ctx, cart), nil
}

// buildView is the read-side join: each line's product reference is resolved
// to name and price. It never fails the request; a product that has vanished
// from the catalog leaves its display fields zeroed.
func (s *CartService) buildView(ctx context.Context, cart *models.Cart) *models.CartView {
	view := &models.CartView{
		UserID:    cart.UserID,
		Items:     make([]models.CartItemView, 0, len(cart.Items)),
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		itemView := models.CartItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Warn("failed to resolve cart product",
				zap.String("product_id", item.ProductID.Hex()), zap.Error(err))
		} else if product != nil {
			itemView.Name = product.Name
			itemView.Price = product.Price
		}
		view.Items = append(view.Items, itemView)
	}
	return view
}

// parseUserID converts the user id carried by a verified token. A signed
// token with a garbage subject is still a bad credential.
func parseUserID(userID string) (primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrInvalidCredential
	}
	return uid, nil
}
