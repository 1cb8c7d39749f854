// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffix

// sortDoubling sorts the circular suffixes using prefix doubling.
//
// After the pass for length k, rank[p] identifies the class of the k-character
// prefix starting at p. The prefix of length 2k at p is the pair
// (rank[p], rank[p+k]), so a single stable radix pass over the order shifted
// by k produces the order for length 2k. Once k reaches n every class holds
// rotations that are fully identical, and a final pass over offsets in
// increasing order breaks those ties by offset.
//
// References:
//	https://en.wikipedia.org/wiki/Suffix_array#Construction_algorithms
func sortDoubling(buf []byte) []int {
	n := len(buf)
	sa := make([]int, n)
	if n == 0 {
		return sa
	}
	rank := make([]int, n)
	tmp := make([]int, n)
	cnt := make([]int, n)

	// Bucket the offsets by their first character.
	var c [256]int
	for _, v := range buf {
		c[v]++
	}
	var sum int
	for i, v := range c {
		c[i] = sum
		sum += v
	}
	for i, v := range buf {
		sa[c[v]] = i
		c[v]++
	}
	classes := 1
	rank[sa[0]] = 0
	for i := 1; i < n; i++ {
		if buf[sa[i]] != buf[sa[i-1]] {
			classes++
		}
		rank[sa[i]] = classes - 1
	}

	for k := 1; k < n && classes < n; k <<= 1 {
		// Shifting every offset back by k yields a list ordered by the
		// second half of the 2k-character prefix.
		for i, p := range sa {
			if p -= k; p < 0 {
				p += n
			}
			tmp[i] = p
		}
		radixPass(tmp, sa, rank, cnt[:classes])

		// Assign new classes to the (first half, second half) pairs.
		prev := sa[0]
		tmp[prev] = 0
		classes = 1
		for _, p := range sa[1:] {
			if rank[p] != rank[prev] || rank[(p+k)%n] != rank[(prev+k)%n] {
				classes++
			}
			tmp[p] = classes - 1
			prev = p
		}
		rank, tmp = tmp, rank
	}

	// Equal rotations share a class; visiting offsets in increasing order
	// places them in offset order within that class.
	for i := range cnt[:classes] {
		cnt[i] = 0
	}
	for _, r := range rank {
		cnt[r]++
	}
	sum = 0
	for i, v := range cnt[:classes] {
		cnt[i] = sum
		sum += v
	}
	for p, r := range rank {
		sa[cnt[r]] = p
		cnt[r]++
	}
	return sa
}

// radixPass stably sorts src into dst using key[src[i]] as the sort key.
// Every key must be within [0, len(cnt)).
func radixPass(src, dst, key, cnt []int) {
	for i := range cnt {
		cnt[i] = 0
	}
	for _, p := range src {
		cnt[key[p]]++
	}
	var sum int
	for i, v := range cnt {
		cnt[i] = sum
		sum += v
	}
	for _, p := range src {
		dst[cnt[key[p]]] = p
		cnt[key[p]]++
	}
}
