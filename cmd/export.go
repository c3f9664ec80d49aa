package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/scoutdeck/scoutdeck/internal/compose"
	"github.com/scoutdeck/scoutdeck/internal/config"
	"github.com/scoutdeck/scoutdeck/internal/export"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Compose the stored presentation into a PDF",
	Long: `Load the presentation from the durable state slot, compose it into a
PDF locally and write the file. Use the serve command for remote exports.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Output file (defaults to a name derived from the title)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	slot, closeSlot, err := openSlot(cfg)
	if err != nil {
		return err
	}
	defer closeSlot()

	store := presentation.NewStore(slot)
	state := store.Snapshot()
	if len(state.Pages) == 0 {
		return fmt.Errorf("the stored presentation has no pages; add photos and generate pages first")
	}

	var bar *progressbar.ProgressBar
	composer := compose.New(
		compose.NewHTTPFetcher(),
		compose.WithProgress(func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Embedding images"),
					progressbar.OptionShowCount(),
				)
			}
			_ = bar.Set(done)
		}),
	)
	driver := export.New(composer, nil)

	doc := store.Document(presentation.Metadata{
		Title:     state.Cover.Title,
		CreatedAt: time.Now(),
	})

	result, err := driver.Export(cmd.Context(), export.ModeLocal, doc)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	output := mustGetString(cmd, "output")
	if output == "" {
		output = result.Filename
	}
	if err := os.WriteFile(output, result.Document, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("Wrote %s (%d pages, %d bytes)\n", output, len(state.Pages), len(result.Document))
	return nil
}
