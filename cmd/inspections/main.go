package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"inspections-cli/internal/api"
	"inspections-cli/internal/config"
	"inspections-cli/internal/domain"
	"inspections-cli/internal/fetch"
	"inspections-cli/internal/report"
	"inspections-cli/internal/store"
	"inspections-cli/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("An error occurred: %s\n", err)
	}
}

func run() error {
	dataDir := os.Getenv("INSPECTIONS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", cfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	if !res.OK() {
		return res.Err()
	}
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	ctx := context.Background()

	// one-off reference-data fetch for the choice lists
	cats, err := client.Filters(ctx)
	if err != nil {
		return err
	}
	choices := tui.Choices{
		Cities:      cats[api.CategoryCities].Values,
		Counties:    cats[api.CategoryCounties].Values,
		PermitTypes: cats[api.CategoryPermitTypes].Values,
	}

	var archive *store.DB
	if cfg.Archive.Enabled {
		archive, err = store.Open(cfg.App.DataDir)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer archive.Close()
	}

	fetcher := fetch.New(client, cfg.API.SearchPages)

	// Session loop: collect -> confirm -> fetch -> collect again, until the
	// user explicitly asks to leave. An iterative loop on purpose; each pass
	// starts from a fresh FilterSet.
	for {
		fs, outcome, err := tui.RunWizard(choices, domain.Today())
		if err != nil {
			return err
		}

		switch outcome {
		case tui.OutcomeConfirmed:
			records, err := tui.WithSpinner("Fetching health inspection reports...", func() ([]domain.InspectionRecord, error) {
				return fetcher.Run(ctx, fs)
			})
			if err != nil {
				return err
			}
			if err := report.Render(os.Stdout, records); err != nil {
				return err
			}
			if archive != nil {
				if runID, err := archive.SaveRun(ctx, fs, records); err != nil {
					log.Printf("[archive] save failed: %v", err)
				} else {
					log.Printf("[archive] run %d saved (%d records)", runID, len(records))
				}
			}

		case tui.OutcomeRejected:
			exit, err := tui.AskYesNo("Do you want to exit the program?")
			if err != nil {
				return err
			}
			if exit {
				fmt.Println("Goodbye")
				return nil
			}

		case tui.OutcomeCancelled:
			// start over with a fresh wizard
		}
	}
}
