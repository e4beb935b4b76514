package util

import (
	"fmt"
)

// OrderedMap implements a simple map data structure that maintains its insertion order.
type OrderedMap[K comparable, V any] struct {
	data map[K]V
	ind  map[int]K
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		data: make(map[K]V),
		ind:  make(map[int]K),
	}
}

func (self *OrderedMap[K, V]) Len() int {
	return len(self.data)
}

func (self *OrderedMap[K, V]) Has(key K) bool {
	_, ok := self.data[key]
	return ok
}

func (self *OrderedMap[K, V]) Insert(keyvals ...interface{}) *OrderedMap[K, V] {
	if len(keyvals) == 0 || len(keyvals)%2 != 0 {
		panic(fmt.Errorf("Expected non-zero even number of key/value pairs to OrderedMap.Insert, got: %v", keyvals))
	}
	for i, ii := 0, len(keyvals); i < ii; i += 2 {
		k := keyvals[i].(K)
		v := keyvals[i+1].(V)
		idx := len(self.data)
		self.ind[idx] = k
		self.data[k] = v
	}
	return self
}

func (self *OrderedMap[K, V]) Get(key K) V {
	return self.data[key]
}

func (self *OrderedMap[K, V]) GetIndex(idx int) (K, V) {
	l := self.Len()
	if idx < 0 || idx >= l {
		panic(fmt.Errorf("Bounds check: OrderedMap.GetIndex(%d) on map of len %d", idx, l))
	}
	k := self.ind[idx]
	return k, self.data[k]
}
