package portfolio

import (
	"context"
	"sync"

	"github.com/gcavalcante/walletfolio/internal/pkg/logger"
	"github.com/gcavalcante/walletfolio/internal/pkg/resilience/retry"

	"golang.org/x/time/rate"
)

// chainResult carries one chain's fetch outcome through the join.
type chainResult[T any] struct {
	chain string
	items []T
	err   error
}

// fanOut runs fetch once per chain with at most limit goroutines in
// flight, waiting on the shared rate limiter before each call and wrapping
// each call in the retry policy when one is configured. It blocks until
// every chain has completed (an all-complete join): a slow or failing
// chain never blocks the others' results.
//
// The returned map holds the successful chains only; failed counts how
// many chains ended in an error after retries. Failures are warn-logged
// here so callers only decide between partial data and total failure.
func fanOut[T any](
	ctx context.Context,
	chains []string,
	limit int,
	limiter *rate.Limiter,
	retrier retry.Retry,
	operation string,
	fetch func(ctx context.Context, chain string) ([]T, error),
) (map[string][]T, int) {
	if limit <= 0 {
		limit = 1
	}

	var (
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, limit)
		resultCh  = make(chan chainResult[T], len(chains))
	)

	for _, chain := range chains {
		wg.Add(1)
		go func(chain string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					resultCh <- chainResult[T]{chain: chain, err: err}
					return
				}
			}

			var items []T
			call := func() error {
				var err error
				items, err = fetch(ctx, chain)
				return err
			}

			var err error
			if retrier != nil {
				err = retrier.Execute(ctx, call)
			} else {
				err = call()
			}

			resultCh <- chainResult[T]{chain: chain, items: items, err: err}
		}(chain)
	}

	wg.Wait()
	close(resultCh)

	results := make(map[string][]T, len(chains))
	failed := 0
	for res := range resultCh {
		if res.err != nil {
			failed++
			logger.Warn(ctx, "chain fetch failed, degrading to empty result",
				"operation", operation,
				"chain", res.chain,
				"error", res.err,
			)
			continue
		}
		results[res.chain] = res.items
	}

	return results, failed
}
