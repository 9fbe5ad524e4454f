// Package closer закрывает ресурсы приложения в обратном порядке их регистрации.
package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Func - сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

type namedFunc struct {
	name string
	fn   Func
}

// Closer обеспечивает потокобезопасное закрытие ресурсов (LIFO).
type Closer struct {
	funcs         []namedFunc
	mu            sync.Mutex
	once          sync.Once
	forcedTimeout time.Duration
}

// New создает Closer. forcedTimeout - время на принудительное закрытие
// ресурсов, которые не успели закрыться до отмены контекста Close.
func New(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия под именем ресурса.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedFunc{name: name, fn: f})
}

// AddFunc регистрирует функцию закрытия без контекста и ошибки (например, pool.Close).
func (c *Closer) AddFunc(name string, f func()) {
	c.Add(name, func(context.Context) error {
		f()
		return nil
	})
}

// Close закрывает ресурсы в порядке LIFO. Повторные вызовы ничего не делают.
// Если ctx отменяется раньше, оставшиеся ресурсы закрываются параллельно с forcedTimeout.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := append([]namedFunc(nil), c.funcs...)
		c.mu.Unlock()

		remaining, errs := c.gracefulClose(ctx, funcs)
		if len(remaining) > 0 {
			errs = append(errs, c.forcedClose(remaining)...)
			errs = append(errs, fmt.Errorf("shutdown interrupted after %d/%d funcs", len(funcs)-len(remaining), len(funcs)))
		}
		err = errors.Join(errs...)
	})

	return err
}

// gracefulClose закрывает функции по одной, начиная с последней.
// При отмене контекста возвращает еще не закрытые функции.
func (c *Closer) gracefulClose(ctx context.Context, funcs []namedFunc) ([]namedFunc, []error) {
	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		f := funcs[i]
		done := make(chan error, 1)
		go func() {
			done <- f.fn(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", f.name, err))
			}
		case <-ctx.Done():
			return funcs[:i+1], errs
		}
	}

	return nil, errs
}

// forcedClose параллельно запускает оставшиеся функции с собственным таймаутом.
func (c *Closer) forcedClose(funcs []namedFunc) []error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, f := range funcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("forced close %s: %w", f.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
