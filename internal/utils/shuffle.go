package utils

import "math/rand"

// Shuffle permutes items in place with a Fisher-Yates shuffle: for each index
// i from the last down to 1, swap items[i] with a uniformly chosen index in
// [0, i]. Every permutation is equally likely. Uses the shared math/rand
// source, which is safe for concurrent draws; selection does not need to be
// cryptographic.
func Shuffle[T any](items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
