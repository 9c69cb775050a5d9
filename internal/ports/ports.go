package ports

import (
	"context"
	"time"

	"github.com/gusrasch/ventii/internal/domain"
)

// VisionClient sends a prompt plus embedded images to a vision-capable
// language model and returns the raw response text.
type VisionClient interface {
	Complete(ctx context.Context, prompt string, images []domain.EncodedImage) (string, error)
}

// EventExtractor exposes the three model-backed extraction stages.
type EventExtractor interface {
	Filter(ctx context.Context, image domain.EncodedImage) (bool, error)
	Summarize(ctx context.Context, image domain.EncodedImage, todayDate string) (string, error)
	Structure(ctx context.Context, image domain.EncodedImage, summary string) (domain.EventInfo, error)
}

// RunStore persists completed run records for auditability.
type RunStore interface {
	SaveRun(ctx context.Context, run domain.ProcessingRun) error
}

// RunIndex records persisted runs in a queryable index.
type RunIndex interface {
	RecordRun(ctx context.Context, run domain.ProcessingRun) error
	RunsOnDay(ctx context.Context, day time.Time) ([]domain.RunSummary, error)
}
