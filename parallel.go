package kde

import "sync"

// directEvalParallel computes DirectEval for every point in queries,
// writing each result into the point's Attr.Lower and Attr.Upper (both
// equal, since direct evaluation carries no pruning-induced bound gap).
// Work is split into contiguous, non-overlapping index ranges across
// numWorkers goroutines; since no range writes another's queries, no
// synchronization beyond the final wg.Wait is needed, and the result is
// bitwise identical to running DirectEval sequentially over queries.
// numWorkers <= 1 falls back to a single-threaded loop.
func directEvalParallel(k *KernelDensity, queries []DataPoint, numWorkers int) {
	n := len(queries)
	if numWorkers <= 1 || n <= 1 {
		for i := range queries {
			result, _ := k.DirectEval(queries[i].P)
			queries[i].Attr.Lower = result
			queries[i].Attr.Upper = result
		}
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				result, _ := k.DirectEval(queries[i].P)
				queries[i].Attr.Lower = result
				queries[i].Attr.Upper = result
			}
		}(start, end)
	}

	wg.Wait()
}
