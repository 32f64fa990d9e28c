package safego

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// Execute runs the given function in a new goroutine.
// It recovers from any panics within the goroutine, logs them with the provided logger and a descriptive name,
// and includes a stack trace.
func Execute(ctx context.Context, logger domain.Logger, goroutineName string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				// Create a new context if the original one is done, to ensure logging still works.
				logCtx := ctx
				if ctx.Err() != nil {
					logCtx = context.Background()
				}
				logger.Error(logCtx, fmt.Sprintf("Panic recovered in goroutine: %s", goroutineName),
					"panic_info", fmt.Sprintf("%v", r),
					"stacktrace", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// ExecuteTicker runs fn on every tick of the given interval until ctx is
// cancelled, with the same panic protection as Execute. A panic inside
// one tick is logged and the loop keeps running.
func ExecuteTicker(ctx context.Context, logger domain.Logger, goroutineName string, interval time.Duration, fn func()) {
	Execute(ctx, logger, goroutineName, func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				func() {
					defer func() {
						if r := recover(); r != nil {
							logger.Error(context.Background(), fmt.Sprintf("Panic recovered in ticker goroutine: %s", goroutineName),
								"panic_info", fmt.Sprintf("%v", r),
								"stacktrace", string(debug.Stack()),
							)
						}
					}()
					fn()
				}()
			}
		}
	})
}
