package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scoutdeck",
	Short: "Compose location scouting presentations into PDF documents",
	Long: `ScoutDeck manages presentation documents for film and advertising
location scouting: an ordered selection of location photographs plus layout
directives is composed into a paginated PDF with an optional cover and table
of contents. Exports run locally or through a remote Studio render service.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
