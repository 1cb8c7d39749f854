// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

// recencyList is a circular doubly linked list over the symbols of the
// alphabet, where node i holds symbol i. Since each node is addressed by its
// symbol, unlinking a symbol and pushing it to the front is O(1). Locating a
// symbol's rank walks from the head and costs O(rank), which is cheap on BWT
// output where most ranks are near zero.
type recencyList struct {
	next [256]uint8
	prev [256]uint8
	head uint8
}

// Init resets the list to the symbols 0 through n-1 in ascending order.
// The size n must be within [1, 256].
func (l *recencyList) Init(n int) {
	for i := 0; i < n; i++ {
		l.next[i] = uint8((i + 1) % n)
		l.prev[i] = uint8((i + n - 1) % n)
	}
	l.head = 0
}

// Encode returns the rank of v and moves v to the front.
// The symbol v must be in the list.
func (l *recencyList) Encode(v uint8) (idx uint8) {
	if v == l.head {
		return 0
	}
	for p := l.head; p != v; p = l.next[p] {
		idx++
	}
	l.moveToFront(v)
	return idx
}

// Decode returns the symbol at rank idx and moves it to the front.
// The rank must be less than the list size.
func (l *recencyList) Decode(idx uint8) (v uint8) {
	v = l.head
	for i := uint8(0); i < idx; i++ {
		v = l.next[v]
	}
	l.moveToFront(v)
	return v
}

func (l *recencyList) moveToFront(v uint8) {
	if v == l.head {
		return
	}
	l.next[l.prev[v]] = l.next[v]
	l.prev[l.next[v]] = l.prev[v]

	tail := l.prev[l.head]
	l.next[tail] = v
	l.prev[v] = tail
	l.next[v] = l.head
	l.prev[l.head] = v
	l.head = v
}
