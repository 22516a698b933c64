package cache

import (
	"context"
	"strings"

	"comissoes/internal/core"
)

// DateLookup resolves the creation and settlement dates of a shipment.
type DateLookup interface {
	LookupDates(ctx context.Context, code string) (core.ShipmentDates, error)
}

// CachedDates memoizes a DateLookup by trimmed shipment code. Errors are not
// cached so a transient failure is retried on the next call.
type CachedDates struct {
	next  DateLookup
	cache Cache[string, core.ShipmentDates]

	hits, misses int
}

// NewCachedDates wraps next with an LRU holding at most size codes.
func NewCachedDates(next DateLookup, size int) *CachedDates {
	return &CachedDates{next: next, cache: NewLRU[string, core.ShipmentDates](size, 0)}
}

func (c *CachedDates) LookupDates(ctx context.Context, code string) (core.ShipmentDates, error) {
	key := strings.TrimSpace(code)
	if d, ok := c.cache.Get(key); ok {
		c.hits++
		return d, nil
	}
	c.misses++

	d, err := c.next.LookupDates(ctx, key)
	if err != nil {
		return core.ShipmentDates{}, err
	}
	c.cache.Set(key, d)
	return d, nil
}

// Stats reports hits and misses since construction.
func (c *CachedDates) Stats() (hits, misses int) {
	return c.hits, c.misses
}
