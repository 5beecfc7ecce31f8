// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package cache

import "time"

// entry is a cached report together with its expiry deadline. index is the
// entry's slot in the heap array, maintained by the heap operations.
type entry struct {
	key       string
	data      interface{}
	expiresAt time.Time
	index     int
}

// expiryHeap is a min-heap of cache entries ordered by expiry deadline, with
// a parallel map for O(1) key lookup. The root is always the entry closest
// to expiring, so sweeping expired entries and evicting at capacity are both
// O(log n) per entry.
//
// Not safe for concurrent use: Cache's lock guards it.
type expiryHeap struct {
	items  []*entry
	byKey  map[string]*entry
	maxLen int // maximum entries, 0 = unbounded
}

func newExpiryHeap(maxLen int) *expiryHeap {
	return &expiryHeap{
		items:  make([]*entry, 0),
		byKey:  make(map[string]*entry),
		maxLen: maxLen,
	}
}

// push inserts an entry or refreshes an existing key in place. When the heap
// is over capacity after an insert, the entry closest to expiry is dropped
// and returned; otherwise push returns nil.
func (h *expiryHeap) push(key string, data interface{}, expiresAt time.Time) *entry {
	if existing, ok := h.byKey[key]; ok {
		existing.data = data
		existing.expiresAt = expiresAt
		h.fix(existing.index)
		return nil
	}

	e := &entry{
		key:       key,
		data:      data,
		expiresAt: expiresAt,
		index:     len(h.items),
	}
	h.items = append(h.items, e)
	h.byKey[key] = e
	h.bubbleUp(e.index)

	if h.maxLen > 0 && len(h.items) > h.maxLen {
		return h.popSoonest()
	}
	return nil
}

// get returns the entry for key without removing it, or nil.
func (h *expiryHeap) get(key string) *entry {
	return h.byKey[key]
}

// remove deletes the entry for key and returns it, or nil if absent.
func (h *expiryHeap) remove(key string) *entry {
	e, ok := h.byKey[key]
	if !ok {
		return nil
	}
	return h.removeAt(e.index)
}

// popExpired removes every entry whose deadline is at or before now and
// returns the number removed.
func (h *expiryHeap) popExpired(now time.Time) int {
	removed := 0
	for len(h.items) > 0 && !h.items[0].expiresAt.After(now) {
		h.removeAt(0)
		removed++
	}
	return removed
}

func (h *expiryHeap) size() int {
	return len(h.items)
}

func (h *expiryHeap) clear() {
	h.items = make([]*entry, 0)
	h.byKey = make(map[string]*entry)
}

// popSoonest removes and returns the root, the entry closest to expiry.
func (h *expiryHeap) popSoonest() *entry {
	if len(h.items) == 0 {
		return nil
	}
	return h.removeAt(0)
}

// removeAt removes the entry at index i, preserving the heap property.
func (h *expiryHeap) removeAt(i int) *entry {
	n := len(h.items) - 1
	e := h.items[i]
	delete(h.byKey, e.key)

	if i == n {
		h.items = h.items[:n]
		return e
	}

	h.items[i] = h.items[n]
	h.items[i].index = i
	h.items = h.items[:n]
	h.fix(i)
	return e
}

// fix restores the heap property after the deadline at index i changed.
func (h *expiryHeap) fix(i int) {
	if h.bubbleUp(i) {
		return
	}
	h.bubbleDown(i)
}

// bubbleUp moves the entry at index i toward the root while it expires
// earlier than its parent. Returns true if the entry moved.
func (h *expiryHeap) bubbleUp(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !h.items[i].expiresAt.Before(h.items[parent].expiresAt) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

// bubbleDown moves the entry at index i toward the leaves while a child
// expires earlier.
func (h *expiryHeap) bubbleDown(i int) {
	n := len(h.items)
	for {
		soonest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.items[left].expiresAt.Before(h.items[soonest].expiresAt) {
			soonest = left
		}
		if right < n && h.items[right].expiresAt.Before(h.items[soonest].expiresAt) {
			soonest = right
		}
		if soonest == i {
			break
		}

		h.swap(i, soonest)
		i = soonest
	}
}

func (h *expiryHeap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}
