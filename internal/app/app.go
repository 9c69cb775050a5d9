package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gusrasch/ventii/internal/config"
	"github.com/gusrasch/ventii/internal/domain"
	"github.com/gusrasch/ventii/internal/infrastructure/llm"
	"github.com/gusrasch/ventii/internal/infrastructure/storage"
	"github.com/gusrasch/ventii/internal/logging"
	"github.com/gusrasch/ventii/internal/stages"
	"github.com/gusrasch/ventii/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	index    *storage.SQLiteIndex
	saveRuns bool
}

// New builds a runnable application instance. When saveRuns is false the
// pipeline executes without writing any run artifacts.
func New(cfg config.Config, baseLogger *slog.Logger, saveRuns bool) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := llm.NewOpenAIClient(cfg.OpenAI)
	extractor := stages.NewExtractor(client, baseLogger.With("component", "stages"))

	var referenceDate time.Time
	if cfg.Pipeline.ReferenceDate != "" {
		date, err := domain.ParseDate(cfg.Pipeline.ReferenceDate)
		if err != nil {
			return nil, fmt.Errorf("config: referenceDate: %w", err)
		}
		referenceDate = time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.Local)
	}

	app := &Application{cfg: cfg, saveRuns: saveRuns}

	deps := usecase.PipelineDeps{
		Extractor: extractor,
		Config: usecase.RunConfig{
			Model:         cfg.OpenAI.Model,
			Temperature:   cfg.OpenAI.Temperature,
			Attempts:      cfg.Pipeline.Attempts,
			ReferenceDate: referenceDate,
		},
		Logger: baseLogger.With("component", "pipeline"),
	}

	if saveRuns {
		deps.Store = storage.NewFileStore(cfg.Storage.RunHistoryDir)
		if cfg.Storage.IndexPath != "" {
			index, err := storage.OpenSQLiteIndex(cfg.Storage.IndexPath)
			if err != nil {
				baseLogger.Warn("run index unavailable", "error", err)
			} else {
				app.index = index
				deps.Index = index
			}
		}
	}

	app.pipeline = usecase.NewPipeline(deps)
	return app, nil
}

// Close releases resources held by the application.
func (a *Application) Close() error {
	if a.index == nil {
		return nil
	}
	return a.index.Close()
}

// ProcessImage runs a single image through the pipeline.
func (a *Application) ProcessImage(ctx context.Context, imagePath string) (*domain.EventInfo, error) {
	return a.pipeline.ProcessImage(ctx, imagePath, a.saveRuns)
}

// ProcessDirectory runs every image in a directory through the pipeline.
func (a *Application) ProcessDirectory(ctx context.Context, dirPath string) ([]*domain.EventInfo, error) {
	return a.pipeline.ProcessDirectory(ctx, dirPath)
}

// RunsOnDay lists indexed runs for one date partition.
func (a *Application) RunsOnDay(ctx context.Context, day time.Time) ([]domain.RunSummary, error) {
	if a.index == nil {
		index, err := storage.OpenSQLiteIndex(a.cfg.Storage.IndexPath)
		if err != nil {
			return nil, err
		}
		defer index.Close()
		return index.RunsOnDay(ctx, day)
	}
	return a.index.RunsOnDay(ctx, day)
}
