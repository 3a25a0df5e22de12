package fn

import "sync"

// ParMapResult applies a fallible f to every item with at most workers
// goroutines in flight. The returned slice keeps input order, one Result
// per item; workers <= 0 means unbounded.
func ParMapResult[T, U any](items []T, workers int, f func(T) Result[U]) []Result[U] {
	out := make([]Result[U], len(items))
	var wg sync.WaitGroup

	if workers <= 0 {
		workers = len(items)
	}
	if workers == 0 {
		return out
	}

	sem := make(chan struct{}, workers)
	for i, v := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, v T) {
			defer func() { <-sem; wg.Done() }()
			out[i] = f(v)
		}(i, v)
	}
	wg.Wait()
	return out
}
