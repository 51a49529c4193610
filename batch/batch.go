package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/bartossh/addrgen/address"
	"github.com/bartossh/addrgen/logger"
)

var (
	ErrInvalidCount = errors.New("count must be greater than zero")
	ErrDuplicateKey = errors.New("duplicated public key, entropy source is broken")
)

// Creator creates new addresses.
type Creator interface {
	Create() (address.Address, error)
}

// Config holds configuration of the batch Generate.
type Config struct {
	Workers int `yaml:"workers"` // number of concurrent workers, defaults to number of CPUs
}

// Generate creates count independent addresses using concurrent workers.
// The first failure cancels remaining work, already created addresses are wiped and error is returned.
// Returned addresses keep the creation order of their indexes.
func Generate(ctx context.Context, cfg Config, c Creator, log logger.Logger, count int) ([]address.Address, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > count {
		workers = count
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make([]address.Address, count)
	jobs := make(chan int)
	var once sync.Once
	var firstErr error
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				a, err := c.Create()
				if err != nil {
					fail(fmt.Errorf("address %d: %w", i, err))
					return
				}
				result[i] = a
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < count; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	if firstErr == nil {
		if err := ctx.Err(); err != nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = checkUnique(result)
	}
	if firstErr != nil {
		for i := range result {
			result[i].Wipe()
		}
		if log != nil {
			log.Error(fmt.Sprintf("batch of %d addresses failed: %s", count, firstErr))
		}
		return nil, firstErr
	}

	if log != nil {
		log.Info(fmt.Sprintf("batch of %d addresses created with %d workers", count, workers))
	}
	return result, nil
}

func checkUnique(addrs []address.Address) error {
	seen := make(map[string]int, len(addrs))
	for i, a := range addrs {
		if j, ok := seen[string(a.PublicKey)]; ok {
			return fmt.Errorf("%w: addresses %d and %d", ErrDuplicateKey, j, i)
		}
		seen[string(a.PublicKey)] = i
	}
	return nil
}
