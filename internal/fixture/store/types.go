// Package store holds the proxy side of the test fixtures: contracts a
// caller programs against, shaped after the warehouse types.
package store

import "duck-bridge/bridge"

// OrderStatus is the contract side order status.
type OrderStatus int32

const (
	StatusPending OrderStatus = iota
	StatusPaid
	StatusShipped
	StatusCancelled
)

// OrderStatuses lists every OrderStatus member.
var OrderStatuses = []OrderStatus{StatusPending, StatusPaid, StatusShipped, StatusCancelled}

// Item is a product as the store sees it.
type Item struct {
	Title func() string
	Price func() int64
}

// Order is an order as the store sees it.
type Order struct {
	GetStatus func() OrderStatus
	Advance   func(to OrderStatus) error
	Promote   func(s *OrderStatus, steps int)
	Lines     func() []*Item
	Reverse   func(items []*Item)
	Sort      func(statuses []OrderStatus)
}

// Stock is the inventory as the store sees it.
type Stock interface {
	Contains(item *Item) bool
	Find(sku string) *Item
	Reserve(sku string, qty *int) bool
	Each(visit func(item *Item) bool)
	Total(skus ...string) int64
}

// Register records the store enumerations and shims in r.
func Register(r *bridge.Registry) error {
	if err := bridge.RegisterEnum(r.Catalog(), OrderStatuses...); err != nil {
		return err
	}

	return bridge.RegisterShim[Stock](r, NewStockShim)
}
