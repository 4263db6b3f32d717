// Package parallel contains the bounded ForEach used to preprocess rows concurrently.
package parallel

import "sync"

// ForEach executes body for every integer from 0 to length with at most limit concurrent goroutines.
// It waits for all of them and returns the error of the lowest failing index.
func ForEach(length, limit int, body func(i int) error) error {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return nil
	}

	var errs = make([]error, length)
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			errs[i] = body(i)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
