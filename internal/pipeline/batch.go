package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/keyhound/keyhound/internal/model"
	"github.com/keyhound/keyhound/internal/validate"
)

// DefaultConcurrency bounds validation workers when no limit is given.
// Validation is CPU-bound (hashing and curve arithmetic), so a small
// fixed pool keeps memory steady without starving throughput.
const DefaultConcurrency = 10

// BatchValidator validates batches of artifacts concurrently.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because it is simpler and handles the concurrency bound
// correctly. Each artifact gets its own goroutine, but only
// `concurrency` goroutines run simultaneously, and each writes to its
// own pre-allocated slot so no locking is needed for results.
type BatchValidator struct {
	// concurrency is the maximum number of concurrent validations.
	concurrency int

	// logger is used for batch-level logging. Never logs raw artifact
	// text.
	logger *slog.Logger
}

// BatchOption configures a BatchValidator.
type BatchOption func(*BatchValidator)

// WithConcurrency sets the maximum number of concurrent validations.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchValidator) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets a custom logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchValidator) {
		b.logger = logger
	}
}

// NewBatchValidator creates a BatchValidator.
func NewBatchValidator(opts ...BatchOption) *BatchValidator {
	b := &BatchValidator{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// ValidateBatch validates every artifact and returns a result map
// keyed by artifact id, with exactly one entry per artifact regardless
// of individual validity.
//
// One artifact's panic or failure never fails the batch: a panicking
// validation is captured as an error-status result for that artifact
// alone. The error return is non-nil only when ctx was cancelled
// before all validations completed.
func (b *BatchValidator) ValidateBatch(ctx context.Context, artifacts []*model.Artifact) (map[string]*model.ValidationResult, error) {
	b.logger.Debug("starting batch validation",
		"total_artifacts", len(artifacts),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	// Pre-allocate one slot per artifact; each worker owns exactly
	// one slot, so no mutex is needed.
	slots := make([]*model.ValidationResult, len(artifacts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, artifact := range artifacts {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			slots[i] = b.validateOne(artifact)
			return nil
		})
	}

	err := g.Wait()

	results := make(map[string]*model.ValidationResult, len(artifacts))
	for i, artifact := range artifacts {
		if slots[i] == nil {
			// Cancelled before this slot ran; record the outcome so
			// the batch cardinality contract still holds.
			res := &model.ValidationResult{}
			res.AddError("validation cancelled before it ran")
			slots[i] = res
		}
		results[artifact.ID] = slots[i]
	}

	b.logger.Debug("batch validation complete",
		"total_artifacts", len(artifacts),
		"elapsed", time.Since(startTime),
	)
	return results, err
}

// validateOne validates a single artifact, converting a panic into an
// error-status result so the batch survives.
func (b *BatchValidator) validateOne(artifact *model.Artifact) (res *model.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("validation panicked",
				"artifact_id", artifact.ID,
				"artifact_type", artifact.Type.String(),
			)
			res = &model.ValidationResult{}
			res.AddError(fmt.Sprintf("validation panicked: %v", r))
			artifact.ValidationStatus = model.StatusError
		}
	}()

	return validate.Validate(artifact)
}
