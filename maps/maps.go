package maps

import "sync"

// Pair is a single key-value entry of an OrderedMap.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap structure that maintains the insertion order
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
	mu     sync.RWMutex // Mutex to ensure concurrency safety
}

/*
NewOrderedMap creates a new instance of OrderedMap

Keys are iterated in the order they were first set. Setting an existing key
replaces its value but keeps its original position.

One should be careful when using the Range method. The callback function should not modify the OrderedMap.
*/
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:   []K{},
		values: make(map[K]V),
	}
}

// FromPairs creates an OrderedMap holding the given pairs in order.
// A repeated key keeps its first position and its last value.
func FromPairs[K comparable, V any](pairs ...Pair[K, V]) *OrderedMap[K, V] {
	o := NewOrderedMap[K, V]()
	for _, p := range pairs {
		o.Set(p.Key, p.Value)
	}
	return o
}

// Len returns the number of key-value pairs in the OrderedMap
func (o *OrderedMap[K, V]) Len() int {
	if o == nil {
		return 0
	}
	o.mu.RLock()
	defer o.mu.RUnlock()

	return len(o.keys)
}

// Set adds or updates a key-value pair in the OrderedMap
func (o *OrderedMap[K, V]) Set(key K, value V) {
	o.mu.Lock()         // Lock for writing
	defer o.mu.Unlock() // Unlock after operation

	if o.values == nil {
		o.values = make(map[K]V)
	}

	// Check if the key already exists in the map
	if _, exists := o.values[key]; !exists {
		// If the key does not exist, add it to the keys slice
		o.keys = append(o.keys, key)
	}
	// Set the value in the map
	o.values[key] = value
}

// Get retrieves the value associated with a key
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	if o == nil {
		var zero V
		return zero, false
	}
	o.mu.RLock()         // Lock for reading
	defer o.mu.RUnlock() // Unlock after operation

	value, exists := o.values[key]
	return value, exists
}

// Has reports whether the key is present.
func (o *OrderedMap[K, V]) Has(key K) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes a key-value pair from the OrderedMap
func (o *OrderedMap[K, V]) Delete(key K) {
	o.mu.Lock()         // Lock for writing
	defer o.mu.Unlock() // Unlock after operation

	if _, exists := o.values[key]; exists {
		// Delete the key from the map
		delete(o.values, key)
		// Remove the key from the keys slice
		for i, k := range o.keys {
			if k == key {
				o.keys = append(o.keys[:i], o.keys[i+1:]...)
				break
			}
		}
	}
}

// Keys returns the keys in the order they were added
func (o *OrderedMap[K, V]) Keys() []K {
	if o == nil {
		return nil
	}
	o.mu.RLock()         // Lock for reading
	defer o.mu.RUnlock() // Unlock after operation

	// Return a copy of the keys slice to prevent modification
	return append([]K(nil), o.keys...)
}

// Values returns the values in the order they were added
func (o *OrderedMap[K, V]) Values() []V {
	if o == nil {
		return nil
	}
	o.mu.RLock()         // Lock for reading
	defer o.mu.RUnlock() // Unlock after operation

	orderedValues := make([]V, len(o.keys))
	for i, key := range o.keys {
		orderedValues[i] = o.values[key]
	}
	return orderedValues
}

// Pairs returns the key-value pairs in the order they were added
func (o *OrderedMap[K, V]) Pairs() []Pair[K, V] {
	if o == nil {
		return nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()

	pairs := make([]Pair[K, V], len(o.keys))
	for i, key := range o.keys {
		pairs[i] = Pair[K, V]{Key: key, Value: o.values[key]}
	}
	return pairs
}

// Range iterates over the OrderedMap in the order of insertion and applies a callback function.
// If the callback function returns false, the iteration stops.
//
// The callback function should not modify the OrderedMap in any way.
// For example: Calling Set or Delete inside the callback function will cause a deadlock.
func (o *OrderedMap[K, V]) Range(cb func(int, K, V) bool) {
	if o == nil {
		return
	}
	o.mu.RLock()         // Lock for reading
	defer o.mu.RUnlock() // Unlock after operation

	for i, key := range o.keys {
		if !cb(i, key, o.values[key]) {
			break
		}
	}
}

// Clone returns a shallow copy of the OrderedMap. Cloning a nil map returns nil.
func (o *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	if o == nil {
		return nil
	}
	return FromPairs(o.Pairs()...)
}

// Filter returns a new OrderedMap with the entries for which keep returns true,
// in their original relative order.
func (o *OrderedMap[K, V]) Filter(keep func(K, V) bool) *OrderedMap[K, V] {
	filtered := NewOrderedMap[K, V]()
	o.Range(func(_ int, key K, value V) bool {
		if keep(key, value) {
			filtered.Set(key, value)
		}
		return true
	})
	return filtered
}

// MapValues returns a new OrderedMap with every value replaced by fn(key, value),
// keeping the key order.
func MapValues[K comparable, V, W any](o *OrderedMap[K, V], fn func(K, V) W) *OrderedMap[K, W] {
	mapped := NewOrderedMap[K, W]()
	o.Range(func(_ int, key K, value V) bool {
		mapped.Set(key, fn(key, value))
		return true
	})
	return mapped
}
