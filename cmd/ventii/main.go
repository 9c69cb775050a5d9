package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gusrasch/ventii/internal/app"
	"github.com/gusrasch/ventii/internal/config"
	"github.com/gusrasch/ventii/internal/domain"
	"github.com/gusrasch/ventii/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error during processing: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		imagePath string
		dirPath   string
		noSave    bool
		devMode   bool
	)

	cmd := &cobra.Command{
		Use:           "ventii",
		Short:         "Extract structured event information from flyer images",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = devMode // reserved for development tooling

			application, err := buildApp(!noSave)
			if err != nil {
				return err
			}
			defer application.Close()

			if imagePath != "" {
				result, err := application.ProcessImage(cmd.Context(), imagePath)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			}

			results, err := application.ProcessDirectory(cmd.Context(), dirPath)
			if err != nil {
				return err
			}
			if results == nil {
				results = []*domain.EventInfo{}
			}
			return printJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "path to a single image file to process")
	cmd.Flags().StringVar(&dirPath, "directory", "", "path to a directory of image files to process")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving run history")
	cmd.Flags().BoolVar(&devMode, "dev", false, "development mode flag (currently no-op)")
	cmd.MarkFlagsMutuallyExclusive("image", "directory")
	cmd.MarkFlagsOneRequired("image", "directory")

	cmd.AddCommand(newRunsCmd())

	return cmd
}

func newRunsCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted runs for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			when := time.Now()
			if day != "" {
				date, err := domain.ParseDate(day)
				if err != nil {
					return err
				}
				when = time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.Local)
			}

			application, err := buildApp(true)
			if err != nil {
				return err
			}
			defer application.Close()

			summaries, err := application.RunsOnDay(cmd.Context(), when)
			if err != nil {
				return err
			}
			if summaries == nil {
				summaries = []domain.RunSummary{}
			}
			return printJSON(cmd, summaries)
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "date partition to list (YYYY-MM-DD, default today)")

	return cmd
}

func buildApp(saveRuns bool) (*app.Application, error) {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	return app.New(cfg, logger, saveRuns)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
