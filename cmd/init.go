package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/learndash/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize learndash configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure learndash and writes the config file (default .learndash.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s. Start the dashboard with `learndash server`.\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
