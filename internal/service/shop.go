package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// ErrOutOfStock is returned when adding an item the store cannot sell.
var ErrOutOfStock = &domain.ValidationError{Field: "itemId", Message: "is out of stock"}

// Shop exposes the catalog and each session's cart.
type Shop struct {
	catalog       *domain.Catalog
	cart          *store.Collection[domain.CartItem]
	shippingCents int64
	logger        *slog.Logger
}

func NewShop(backend store.Backend, catalog *domain.Catalog, shippingCents int64, logger *slog.Logger) *Shop {
	return &Shop{
		catalog:       catalog,
		cart:          store.NewCollection[domain.CartItem](backend, store.KeyCart, nil),
		shippingCents: shippingCents,
		logger:        logger,
	}
}

// Catalog lists the items for sale.
func (s *Shop) Catalog() []domain.CatalogItem {
	return s.catalog.Items()
}

// Cart returns the session's cart with totals.
func (s *Shop) Cart(ctx context.Context, session string) (domain.Checkout, error) {
	cart, err := s.load(ctx, session)
	if err != nil {
		return domain.Checkout{}, err
	}
	return cart.Checkout(s.shippingCents), nil
}

// AddItem adds one of itemID to the cart. Unknown items return
// domain.ErrNotFound; items out of stock return ErrOutOfStock.
func (s *Shop) AddItem(ctx context.Context, session, itemID string) (domain.Checkout, error) {
	item, ok := s.catalog.Lookup(itemID)
	if !ok {
		return domain.Checkout{}, fmt.Errorf("catalog item %s: %w", itemID, domain.ErrNotFound)
	}
	if !item.InStock {
		return domain.Checkout{}, ErrOutOfStock
	}
	return s.mutate(ctx, session, func(c *domain.Cart) { c.Add(item) })
}

// SetQuantity overwrites the quantity of itemID. Quantities below one and
// items not in the cart leave the cart unchanged.
func (s *Shop) SetQuantity(ctx context.Context, session, itemID string, n int) (domain.Checkout, error) {
	return s.mutate(ctx, session, func(c *domain.Cart) { c.SetQuantity(itemID, n) })
}

// RemoveItem deletes itemID from the cart whatever its quantity.
func (s *Shop) RemoveItem(ctx context.Context, session, itemID string) (domain.Checkout, error) {
	return s.mutate(ctx, session, func(c *domain.Cart) { c.Remove(itemID) })
}

func (s *Shop) mutate(ctx context.Context, session string, fn func(*domain.Cart)) (domain.Checkout, error) {
	cart, err := s.load(ctx, session)
	if err != nil {
		return domain.Checkout{}, err
	}
	fn(cart)
	if err := s.cart.SaveAll(ctx, session, cart.Items()); err != nil {
		return domain.Checkout{}, err
	}
	return cart.Checkout(s.shippingCents), nil
}

// load resolves the persisted cart against the catalog. Ids the catalog no
// longer carries are dropped with a warning.
func (s *Shop) load(ctx context.Context, session string) (*domain.Cart, error) {
	items, err := s.cart.GetAll(ctx, session)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		item, ok := s.catalog.Lookup(it.ItemID)
		if !ok {
			s.logger.Warn("dropping unknown cart item", "session", session, "item_id", it.ItemID)
			continue
		}
		lines = append(lines, domain.CartLine{Item: item, Quantity: it.Quantity})
	}
	return domain.NewCart(lines...), nil
}
