package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"webintel/webintel/types"
	"webintel/webintel/utils/color"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var analyzeConcurrency int

var analyzeCmd = &cobra.Command{
	Use:   "analyze URL...",
	Short: "Analyze one or more company websites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := initPipeline(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		results := analyzeAll(ctx, args, analyzeConcurrency, app.Analyze.Analyze)

		failed := 0
		for _, res := range results {
			switch {
			case res.Err != nil:
				failed++
				fmt.Fprintln(os.Stderr, color.ColorError("failed ")+res.URL+": "+res.Err.Error())
				continue
			case res.Details.IsDegraded():
				fmt.Fprintln(os.Stderr, color.ColorWarning("degraded ")+res.URL)
			default:
				fmt.Fprintln(os.Stderr, color.ColorInfo("analyzed ")+res.URL)
			}
			if err := printResult(os.Stdout, outputFormat, res.Details); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d analyses failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 2, "number of sites analyzed at once")
	rootCmd.AddCommand(analyzeCmd)
}

type analyzeFunc func(ctx context.Context, url string) (*types.BusinessDetails, error)

type analyzeResult struct {
	URL     string
	Details *types.BusinessDetails
	Err     error
}

// analyzeAll runs fn for every URL with at most concurrency calls in flight.
// One failure does not cancel the others. Results keep the input order.
func analyzeAll(ctx context.Context, urls []string, concurrency int, fn analyzeFunc) []analyzeResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]analyzeResult, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			details, err := fn(ctx, url)
			results[i] = analyzeResult{URL: url, Details: details, Err: err}
			if err != nil && loggers != nil {
				loggers.Error.Error("analysis failed", zap.String("url", url), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
