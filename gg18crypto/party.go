// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg18crypto

// otherIndices lists every party position 0..n-1 except self, in ascending order. Every
// broadcast/unicast envelope this package consumes or produces is positionally aligned to
// this ordering: slot i of a peer-message slice belongs to otherIndices(n, self)[i].
func otherIndices(n, self int) []int {
	others := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != self {
			others = append(others, i)
		}
	}
	return others
}
