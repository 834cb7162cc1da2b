package tools

import (
	"context"
	"sync"
)

// RunWithWorkers runs a job function over a slice of inputs with controlled
// concurrency. The handler receives the job's index so workers can write
// results into a preallocated slice without locking. Jobs not yet started
// when ctx is cancelled are skipped; in-flight jobs run to completion.
func RunWithWorkers[T any](ctx context.Context, jobs []T, maxWorkers int, handler func(int, T)) {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxWorkers)

	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, j T) {
			defer wg.Done()
			defer func() { <-sem }()

			handler(idx, j)
		}(i, job)
	}

	wg.Wait()
}
