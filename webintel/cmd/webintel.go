// Command webintel analyzes company websites from the terminal.
package main

import (
	"fmt"
	"os"

	"webintel/webintel/bootstrap"
	"webintel/webintel/config"
	"webintel/webintel/utils/color"
	"webintel/webintel/utils/logging"

	"github.com/spf13/cobra"
)

var (
	cfg     config.Config
	loggers *logging.Loggers

	outputFormat string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:           "webintel",
	Short:         "Extract business intelligence from company websites",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.Disable()
		}
		if outputFormat != formatJSON && outputFormat != formatYAML {
			return fmt.Errorf("unknown --format %q (want json or yaml)", outputFormat)
		}

		cfg = config.LoadConfig()
		if err := cfg.ValidateLLM(); err != nil {
			return fmt.Errorf("missing required configuration: %w", err)
		}
		l, err := logging.NewLoggers(cfg.LogDir)
		if err != nil {
			return err
		}
		loggers = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if loggers != nil {
			loggers.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", formatJSON, "output format: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored status lines")
}

func initPipeline(cmd *cobra.Command) (*bootstrap.App, error) {
	return bootstrap.New(cmd.Context(), cfg, loggers)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError("error: ")+err.Error())
		os.Exit(1)
	}
}
