// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package keylist implements an ordered list (slice) of items,
with a map from a key (e.g., names) to indexes,
to support fast lookup by name. It backs interners where
an item's index is its stable identity.
*/
package keylist

import "fmt"

// List implements an ordered list (slice) of Values,
// with a map from a key to indexes, supporting fast lookup.
// The zero value is ready to use.
type List[K comparable, V any] struct {
	// Values is the ordered slice of items.
	Values []V

	// Keys is the ordered list of keys, in the same order as [List.Values].
	Keys []K

	// indexes is the key-to-index mapping.
	indexes map[K]int
}

// New returns a new [List]. The zero value is usable without
// initialization, so this is just a convenience.
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{}
}

func (kl *List[K, V]) initIndexes() {
	if kl.indexes == nil {
		kl.indexes = make(map[K]int)
	}
}

// Reset resets the list, removing any existing elements.
func (kl *List[K, V]) Reset() {
	kl.Values = nil
	kl.Keys = nil
	kl.indexes = make(map[K]int)
}

// Len returns the number of items in the list.
func (kl *List[K, V]) Len() int {
	return len(kl.Values)
}

// IndexByKey returns the index of the given key, with a -1 if not found.
func (kl *List[K, V]) IndexByKey(key K) int {
	if kl.indexes == nil {
		return -1
	}
	idx, ok := kl.indexes[key]
	if !ok {
		return -1
	}
	return idx
}

// At returns the value at the given index, which must be valid.
func (kl *List[K, V]) At(idx int) V {
	return kl.Values[idx]
}

// KeyAt returns the key at the given index, which must be valid.
func (kl *List[K, V]) KeyAt(idx int) K {
	return kl.Keys[idx]
}

// Add adds an item to the list with the given key, returning the
// index of the item: the existing index if the key is already
// present, else the index of the newly appended item.
func (kl *List[K, V]) Add(key K, val V) int {
	kl.initIndexes()
	if idx, ok := kl.indexes[key]; ok {
		return idx
	}
	idx := len(kl.Values)
	kl.indexes[key] = idx
	kl.Keys = append(kl.Keys, key)
	kl.Values = append(kl.Values, val)
	return idx
}

// String returns a string representation of the list.
func (kl *List[K, V]) String() string {
	return fmt.Sprintf("keylist.List(%d)", len(kl.Values))
}
