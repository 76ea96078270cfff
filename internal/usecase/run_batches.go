package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// BatchSubmitter sends one batch and waits for it to be mined
type BatchSubmitter interface {
	SubmitBatch(ctx context.Context, index int, units uint64) (*models.TxHandle, error)
	AwaitConfirmation(ctx context.Context, handle *models.TxHandle) (*models.Receipt, error)
}

// RunBatches submits a batch plan strictly one transaction at a time. Each batch is
// awaited before the next is signed so nonces from one credential stay ordered.
type RunBatches struct {
	progress ProgressSink
	log      *slog.Logger
}

// NewRunBatches creates a new batch runner
func NewRunBatches(progress ProgressSink, log *slog.Logger) *RunBatches {
	return &RunBatches{
		progress: progress,
		log:      log.With("component", "batches"),
	}
}

// Run executes the plan. On failure it returns the batches confirmed so far and a
// *domain.BatchError naming the failed batch; later batches are never submitted.
// Cancelling ctx does not stop a run once it has started.
func (uc *RunBatches) Run(ctx context.Context, plan models.BatchPlan, submitter BatchSubmitter) ([]*models.BatchResult, error) {
	ctx = afterSubmit(ctx)
	total := plan.BatchCount()
	results := make([]*models.BatchResult, 0, total)
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: "batches"})

	for i := 0; i < total; i++ {
		units := plan.UnitsFor(i)

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "batches",
			Current: i + 1,
			Total:   total,
			Message: fmt.Sprintf("Submitting batch %d of %d (%d units)...", i+1, total, units),
			Spinner: true,
		})

		handle, err := submitter.SubmitBatch(ctx, i, units)
		if err != nil {
			return results, &domain.BatchError{Index: i, Err: fmt.Errorf("submit: %w", err)}
		}
		uc.log.Debug("batch submitted", "index", i, "units", units, "tx", handle.Hash, "nonce", handle.Nonce)

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "batches",
			Current: i + 1,
			Total:   total,
			Message: fmt.Sprintf("Waiting for batch %d of %d (%s)...", i+1, total, handle.Hash),
			Spinner: true,
		})

		receipt, err := submitter.AwaitConfirmation(ctx, handle)
		if err != nil {
			return results, &domain.BatchError{Index: i, Err: fmt.Errorf("await %s: %w", handle.Hash, err)}
		}
		if !receipt.Succeeded {
			return results, &domain.BatchError{Index: i, Err: fmt.Errorf("%w: %s", domain.ErrTransactionReverted, handle.Hash)}
		}

		results = append(results, &models.BatchResult{
			Index:           i,
			Units:           units,
			TransactionHash: handle.Hash,
			BlockNumber:     receipt.BlockNumber,
			Confirmed:       true,
		})
		uc.progress.Info(fmt.Sprintf("Batch %d of %d confirmed: %d units in block %d (%s)", i+1, total, units, receipt.BlockNumber, handle.Hash))
	}

	return results, nil
}
