package usecase

import (
	"context"
	"time"
)

// beforeSubmit bounds the steps that run before anything is signed: dialing
// and fee estimation. The confirmation prompt is not covered.
func beforeSubmit(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// afterSubmit detaches ctx from its parent's deadline and cancellation. A
// transaction that has been sent is awaited until the chain answers.
func afterSubmit(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
