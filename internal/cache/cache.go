// Package cache holds in-process caches for values that are expensive to
// fetch more than once per run, such as shipment dates.
package cache

// Cache is a keyed store that may forget entries at any time.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Len() int
}
