// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffix

import "sort"

// Compare compares the circular suffixes of buf that start at offsets a and b.
// It returns -1, 0, or +1 depending on whether the suffix at a sorts before,
// equal to, or after the suffix at b. Suffixes that match in all len(buf)
// characters are ordered by offset, so Compare only returns 0 when a == b.
func Compare(buf []byte, a, b int) int {
	n := len(buf)
	if a != b {
		i, j := a, b
		for k := 0; k < n; k++ {
			if x, y := buf[i], buf[j]; x != y {
				if x < y {
					return -1
				}
				return +1
			}
			if i++; i == n {
				i = 0
			}
			if j++; j == n {
				j = 0
			}
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

func sortNaive(buf []byte) []int {
	idx := make([]int, len(buf))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return Compare(buf, idx[i], idx[j]) < 0
	})
	return idx
}
