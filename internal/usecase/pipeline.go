package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gusrasch/ventii/internal/domain"
	"github.com/gusrasch/ventii/internal/imageio"
	"github.com/gusrasch/ventii/internal/ports"
	"github.com/gusrasch/ventii/internal/retry"
)

// RunConfig is the configuration snapshot recorded into every run.
type RunConfig struct {
	Model       string
	Temperature float64
	// Attempts is the per-stage retry budget (default 3).
	Attempts int
	// ReferenceDate anchors relative-time resolution; zero means the
	// wall clock at run start.
	ReferenceDate time.Time
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Extractor ports.EventExtractor
	Store     ports.RunStore
	Index     ports.RunIndex
	Config    RunConfig
	Logger    *slog.Logger
}

// Pipeline orchestrates the three extraction stages over one image at a
// time: load, filter, summarize, structure, then persist the run record.
// A negative filter verdict skips the two downstream stages.
type Pipeline struct {
	extractor ports.EventExtractor
	store     ports.RunStore
	index     ports.RunIndex
	cfg       RunConfig
	logger    *slog.Logger
	now       func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	cfg := deps.Config
	if cfg.Attempts < 1 {
		cfg.Attempts = 3
	}
	return &Pipeline{
		extractor: deps.Extractor,
		store:     deps.Store,
		index:     deps.Index,
		cfg:       cfg,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

// ProcessImage runs one image through the full pipeline. The returned
// EventInfo is nil when the filter stage rejected the image. Stage
// errors abort the run after the retry budget is spent; a failed run
// leaves no artifact on disk.
func (p *Pipeline) ProcessImage(ctx context.Context, imagePath string, saveRun bool) (*domain.EventInfo, error) {
	run := domain.ProcessingRun{
		RunID:          uuid.NewString(),
		InputImagePath: imagePath,
		Timestamp:      p.now(),
	}

	reference := p.cfg.ReferenceDate
	if reference.IsZero() {
		reference = run.Timestamp
	}
	todayDate := domain.DateOf(reference).String()

	run.Config = map[string]any{
		"model":       p.cfg.Model,
		"temperature": p.cfg.Temperature,
		"today_date":  todayDate,
	}

	image, err := imageio.Load(imagePath)
	if err != nil {
		return nil, err
	}

	p.debug("run started", "run_id", run.RunID, "image", imagePath)

	var verdict bool
	err = retry.Do(ctx, p.cfg.Attempts, func(ctx context.Context) error {
		var stageErr error
		verdict, stageErr = p.extractor.Filter(ctx, image)
		return stageErr
	})
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.RunID, err)
	}
	run.FilterResult = &verdict

	if verdict {
		var summary string
		err = retry.Do(ctx, p.cfg.Attempts, func(ctx context.Context) error {
			var stageErr error
			summary, stageErr = p.extractor.Summarize(ctx, image, todayDate)
			return stageErr
		})
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", run.RunID, err)
		}
		run.SummaryResult = &summary

		var info domain.EventInfo
		err = retry.Do(ctx, p.cfg.Attempts, func(ctx context.Context) error {
			var stageErr error
			info, stageErr = p.extractor.Structure(ctx, image, summary)
			return stageErr
		})
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", run.RunID, err)
		}
		run.StructuredResult = &info
	} else {
		p.debug("filter rejected image, skipping downstream stages", "run_id", run.RunID)
	}

	if saveRun {
		if err := p.persist(ctx, run); err != nil {
			return nil, fmt.Errorf("run %s: %w", run.RunID, err)
		}
	}

	p.debug("run finished", "run_id", run.RunID, "structured", run.StructuredResult != nil)
	return run.StructuredResult, nil
}

func (p *Pipeline) persist(ctx context.Context, run domain.ProcessingRun) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.SaveRun(ctx, run); err != nil {
		return err
	}

	// The index is best-effort plumbing over the authoritative run
	// tree; an index failure must not fail a run that is already on disk.
	if p.index != nil {
		if err := p.index.RecordRun(ctx, run); err != nil {
			p.warn("record run in index", "run_id", run.RunID, "error", err)
		}
	}
	return nil
}

// ProcessDirectory runs every image file directly under dirPath through
// the pipeline with persistence enabled. Per-file failures are logged
// and do not abort the batch; failed files contribute nothing to the
// result list. Entries for filtered-out images are nil.
func (p *Pipeline) ProcessDirectory(ctx context.Context, dirPath string) ([]*domain.EventInfo, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dirPath, err)
	}

	var results []*domain.EventInfo
	for _, entry := range entries {
		if entry.IsDir() || !imageio.SupportedExtension(filepath.Ext(entry.Name())) {
			continue
		}

		path := filepath.Join(dirPath, entry.Name())
		result, err := p.ProcessImage(ctx, path, true)
		if err != nil {
			p.warn("failed to process image", "file", entry.Name(), "error", err)
			continue
		}

		p.info("successfully processed image", "file", entry.Name())
		results = append(results, result)
	}

	return results, nil
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
