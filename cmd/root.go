package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "learndash",
	Short: "A self-hosted, interactive learning dashboard for data apps",
	Long: `learndash serves an eight-section tutorial on building interactive data
apps: widgets, layout, session state and caching, charts, file upload,
forms, URL parameters and deployment. Every example on the page is live.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".learndash.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
