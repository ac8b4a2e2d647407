package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/progress"
)

var sumCmd = &cobra.Command{
	Use:   "sum [n]",
	Short: "Compute the slow sum of 0..n-1 from the terminal",
	Long: `Runs the dashboard's slow sum once and prints the result. The simulated
delay applies, so this shows what an uncached computation feels like.
Without an argument the configured default n is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		summer := newSummer(cfg)
		n := summer.Range().Default
		if len(args) == 1 {
			n, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("n must be an integer: %q", args[0])
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		reporter := progress.NewReporter()
		reporter.Start(fmt.Sprintf("Computing sum below %d...", n))
		res, err := summer.Sum(ctx, n)
		if err != nil {
			reporter.Finish("Failed")
			return err
		}
		reporter.Finish(fmt.Sprintf("Done in %s", res.Elapsed.Round(time.Millisecond)))

		fmt.Printf("Sum of 0 to %d: %s\n", res.N-1, compute.Commas(res.Sum))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sumCmd)
}
