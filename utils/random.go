package utils

import (
	"math/rand"
	"sync"
	"time"
)

var sampleMu sync.Mutex
var sampleRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// Sample returns k distinct elements of items picked uniformly at random,
// ordered by draw. When items has k elements or fewer the slice is returned
// unchanged. Duplicate index draws are rejected and retried, so the loop
// terminates for any k below len(items).
func Sample[T any](items []T, k int) []T {
	if k < 0 {
		k = 0
	}
	if len(items) <= k {
		return items
	}
	sampleMu.Lock()
	defer sampleMu.Unlock()

	picked := make(map[int]struct{}, k)
	out := make([]T, 0, k)
	for len(out) < k {
		i := sampleRand.Intn(len(items))
		if _, dup := picked[i]; dup {
			continue
		}
		picked[i] = struct{}{}
		out = append(out, items[i])
	}
	return out
}
