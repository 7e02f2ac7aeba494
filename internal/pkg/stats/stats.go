// Package stats reduces a collection to summary counters.
package stats

// Counts holds a total plus one counter per enumerated key.
type Counts struct {
	Total int
	byKey map[string]int
	keys  []string
}

// Count makes one pass over items. Every item increments Total; an item
// increments its key's counter only when the key is one of keys.
func Count[T any](items []T, key func(T) string, keys ...string) Counts {
	c := Counts{
		byKey: make(map[string]int, len(keys)),
		keys:  keys,
	}
	for _, k := range keys {
		c.byKey[k] = 0
	}
	for _, item := range items {
		c.Total++
		k := key(item)
		if _, ok := c.byKey[k]; ok {
			c.byKey[k]++
		}
	}
	return c
}

// Get returns the counter for key, zero when the key was not enumerated.
func (c Counts) Get(key string) int {
	return c.byKey[key]
}

// Sum adds up every enumerated counter. It never exceeds Total.
func (c Counts) Sum() int {
	sum := 0
	for _, n := range c.byKey {
		sum += n
	}
	return sum
}

// Map returns the counters keyed by name, including "total".
func (c Counts) Map() map[string]int {
	out := make(map[string]int, len(c.keys)+1)
	out["total"] = c.Total
	for _, k := range c.keys {
		out[k] = c.byKey[k]
	}
	return out
}

// Keys returns the enumerated keys in declaration order.
func (c Counts) Keys() []string {
	return append([]string(nil), c.keys...)
}
