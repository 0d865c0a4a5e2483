package cart

import (
	"context"
	"math"

	"github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IDGenerator returns a fresh cart line id.
type IDGenerator func() ItemID

// NewItemID returns a UUIDv7: a millisecond timestamp followed by random bits.
func NewItemID() ItemID {
	id, err := uuid.NewV7()
	if err != nil {
		return ItemID(uuid.NewString())
	}
	return ItemID(id.String())
}

// Controller runs the add-or-merge flow over one Store.
type Controller struct {
	store     Store
	badge     Badge
	newID     IDGenerator
	formatter money.Formatter
	metrics   *metrics.CartMetrics
	logg      *logger.Logger
}

// ControllerOptions carries the optional collaborators of a Controller.
type ControllerOptions struct {
	Badge     Badge
	NewID     IDGenerator
	Formatter *money.Formatter
	Metrics   *metrics.CartMetrics
	Logger    *logger.Logger
}

func NewController(store Store, opts ControllerOptions) *Controller {
	c := &Controller{
		store:     store,
		badge:     opts.Badge,
		newID:     opts.NewID,
		formatter: money.DefaultFormatter(),
		metrics:   opts.Metrics,
		logg:      opts.Logger,
	}
	if c.badge == nil {
		c.badge = noopBadge{}
	}
	if c.newID == nil {
		c.newID = NewItemID
	}
	if opts.Formatter != nil {
		c.formatter = *opts.Formatter
	}
	if c.logg == nil {
		c.logg = logger.Nop()
	}
	return c
}

// AddToCart merges in into the persisted list: an item with the same name and
// price gets its quantity bumped, otherwise a new line with qty 1 is appended.
// The badge is refreshed after the list is saved.
func (c *Controller) AddToCart(ctx context.Context, in ProductInput) (Item, error) {
	if err := validateInput(in); err != nil {
		return Item{}, err
	}

	items := c.store.Load(ctx)

	idx := -1
	for i := range items {
		if items[i].Matches(in) {
			idx = i
			break
		}
	}

	result := metrics.AddResultMerged
	if idx >= 0 {
		items[idx].Qty++
	} else {
		result = metrics.AddResultCreated
		items = append(items, Item{
			ID:    c.newID(),
			Name:  in.Name,
			Price: in.Price,
			Style: in.Style,
			Src:   in.Src,
			Qty:   1,
		})
		idx = len(items) - 1
	}

	if err := c.store.Save(ctx, items); err != nil {
		return Item{}, errors.Wrap(errors.CodeDependency, err, "saving cart")
	}
	c.metrics.IncItemsAdded(result)

	ctx = c.logg.WithFields(ctx, map[string]any{"item_id": items[idx].ID, "qty": items[idx].Qty, "result": result})
	c.logg.Debug(ctx, "cart.item.added")

	c.badge.SetCount(ctx, TotalQty(items))
	return items[idx], nil
}

// UpdateCartCount reloads the cart, pushes the quantity sum to the badge and
// returns it. Safe to call on an empty cart.
func (c *Controller) UpdateCartCount(ctx context.Context) int {
	n := TotalQty(c.store.Load(ctx))
	c.badge.SetCount(ctx, n)
	return n
}

// Items returns the persisted list in insertion order.
func (c *Controller) Items(ctx context.Context) []Item {
	return c.store.Load(ctx)
}

// Summary returns the items with their quantity and price totals.
func (c *Controller) Summary(ctx context.Context) Summary {
	items := c.store.Load(ctx)
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	f, _ := total.Float64()
	return Summary{
		Items:          items,
		Count:          TotalQty(items),
		Total:          f,
		FormattedTotal: c.formatter.Format(f),
	}
}

// Clear empties the cart and resets the badge.
func (c *Controller) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "clearing cart")
	}
	c.badge.SetCount(ctx, 0)
	return nil
}

func validateInput(in ProductInput) error {
	if in.Name == "" {
		return errors.New(errors.CodeValidation, "product name is required")
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		return errors.New(errors.CodeValidation, "product price must be a non-negative number").
			WithDetails(map[string]any{"name": in.Name})
	}
	return nil
}
