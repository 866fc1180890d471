// Package warehouse holds the target side of the test fixtures: concrete
// types written without any knowledge of the contracts they are bridged to.
package warehouse

import (
	"errors"
	"fmt"
	"slices"
)

// Status is the fulfilment state of an order.
type Status int32

const (
	StatusPending Status = iota
	StatusPaid
	StatusShipped
	StatusCancelled
)

// Statuses lists every Status member.
var Statuses = []Status{StatusPending, StatusPaid, StatusShipped, StatusCancelled}

// ErrBackwards is returned when an order would move to an earlier status.
var ErrBackwards = errors.New("status cannot move backwards")

// Product represents a sellable item in the warehouse.
type Product struct {
	SKU        string
	Name       string
	PriceCents int64 // in cents (minor currency unit)
	Stock      int
}

func (p *Product) Title() string { return p.Name }

func (p *Product) Price() int64 { return p.PriceCents }

// Order represents a customer's purchase.
type Order struct {
	ID     int64
	Status Status
	Items  []*Product
}

func (o *Order) GetStatus() Status { return o.Status }

// Advance moves the order to a later status.
func (o *Order) Advance(to Status) error {
	if to < o.Status {
		return fmt.Errorf("%w: %d to %d", ErrBackwards, o.Status, to)
	}

	o.Status = to

	return nil
}

// Promote moves *s forward by steps, stopping at StatusShipped.
func (o *Order) Promote(s *Status, steps int) {
	if s != nil && *s < StatusShipped {
		*s = min(*s+Status(steps), StatusShipped)
	}
}

func (o *Order) Lines() []*Product { return o.Items }

// Reverse reverses items in place.
func (o *Order) Reverse(items []*Product) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// Sort orders statuses in place.
func (o *Order) Sort(statuses []Status) {
	slices.Sort(statuses)
}

// Inventory keeps products by SKU in insertion order.
type Inventory struct {
	items []*Product
	log   []string
}

// NewInventory creates an inventory holding products.
func NewInventory(products ...*Product) *Inventory {
	return &Inventory{items: products}
}

// Find returns the product with the given SKU, or nil.
func (i *Inventory) Find(sku string) *Product {
	for _, p := range i.items {
		if p.SKU == sku {
			return p
		}
	}

	return nil
}

// Contains reports whether p is held by the inventory.
func (i *Inventory) Contains(p *Product) bool {
	return slices.Contains(i.items, p)
}

// Reserve takes up to *qty units of sku from stock and stores the amount
// actually reserved back into *qty.
func (i *Inventory) Reserve(sku string, qty *int) bool {
	p := i.Find(sku)
	if p == nil {
		*qty = 0
		return false
	}

	*qty = min(*qty, p.Stock)
	p.Stock -= *qty
	i.log = append(i.log, fmt.Sprintf("reserve %s %d", sku, *qty))

	return *qty > 0
}

// Each visits products until visit returns false.
func (i *Inventory) Each(visit func(p *Product) bool) {
	for _, p := range i.items {
		if !visit(p) {
			return
		}
	}
}

// Total sums the prices of the given SKUs.
func (i *Inventory) Total(skus ...string) int64 {
	var total int64

	for _, sku := range skus {
		if p := i.Find(sku); p != nil {
			total += p.PriceCents
		}
	}

	return total
}

// Audit returns the reservation log.
func (i *Inventory) Audit() []string {
	return append([]string{}, i.log...)
}
