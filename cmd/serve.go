package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scoutdeck/scoutdeck/internal/compose"
	"github.com/scoutdeck/scoutdeck/internal/config"
	"github.com/scoutdeck/scoutdeck/internal/enrich"
	"github.com/scoutdeck/scoutdeck/internal/export"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/storage"
	"github.com/scoutdeck/scoutdeck/internal/studio"
	"github.com/scoutdeck/scoutdeck/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the ScoutDeck web server.
The server exposes the presentation editor API: photo selection, page
layouts, AI enrichment and PDF export.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
}

// openSlot picks the durable slot backend: PostgreSQL when DATABASE_URL is
// set, a local file otherwise. The returned closer releases the backend.
func openSlot(cfg *config.Config) (presentation.Slot, func(), error) {
	if cfg.State.DatabaseURL != "" {
		slot, err := storage.NewPostgresSlot(cfg.State.DatabaseURL, cfg.State.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
		}
		fmt.Println("Using PostgreSQL state storage")
		return slot, func() { _ = slot.Close() }, nil
	}
	fmt.Printf("Using file state storage at %s\n", cfg.State.Path)
	return storage.NewFileSlot(cfg.State.Path), func() {}, nil
}

// buildStudioClient returns nil when no Studio instance is configured.
func buildStudioClient(cfg *config.Config) (*studio.Client, error) {
	if cfg.Studio.URL == "" {
		return nil, nil
	}
	client, err := studio.New(cfg.Studio.URL, cfg.Studio.Token)
	if err != nil {
		return nil, fmt.Errorf("creating Studio client: %w", err)
	}
	return client, nil
}

// buildProvider selects the enrichment backend from configuration. Returns
// nil when the selected backend has no credentials; enrichment is then
// disabled rather than failing startup.
func buildProvider(ctx context.Context, cfg *config.Config, studioClient *studio.Client) (enrich.Provider, error) {
	switch cfg.Enrich.Provider {
	case "studio":
		if studioClient == nil {
			return nil, nil
		}
		return enrich.NewStudioProvider(studioClient), nil
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, nil
		}
		return enrich.NewOpenAIProvider(cfg.OpenAI.Token), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, nil
		}
		return enrich.NewGeminiProvider(ctx, cfg.Gemini.APIKey)
	}
	return nil, fmt.Errorf("unknown enrich provider %q", cfg.Enrich.Provider)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Web.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Web.Host = host
	}

	slot, closeSlot, err := openSlot(cfg)
	if err != nil {
		return err
	}
	defer closeSlot()

	store := presentation.NewStore(slot)

	studioClient, err := buildStudioClient(cfg)
	if err != nil {
		return err
	}

	provider, err := buildProvider(cmd.Context(), cfg, studioClient)
	if err != nil {
		return err
	}
	if provider == nil {
		fmt.Println("Enrichment disabled (no provider configured)")
	} else {
		fmt.Printf("Enrichment provider: %s\n", provider.Name())
	}

	composer := compose.New(compose.NewHTTPFetcher())
	var remote export.RemoteRenderer
	if studioClient != nil {
		remote = studioClient
	}
	driver := export.New(composer, remote)

	server := web.NewServer(cfg, store, provider, driver)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting ScoutDeck on http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
