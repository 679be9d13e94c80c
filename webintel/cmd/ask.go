package main

import (
	"fmt"
	"os"

	"webintel/webintel/utils/color"

	"github.com/spf13/cobra"
)

var (
	askURL      string
	askQuestion string

	directTemperature float64
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question about the company behind a website",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initPipeline(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		answer, err := app.Analyze.Answer(cmd.Context(), askQuestion, askURL)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, color.ColorHeader("source: ")+answer.Source)
		return printResult(os.Stdout, outputFormat, answer)
	},
}

var directCmd = &cobra.Command{
	Use:   "direct QUESTION",
	Short: "Ask the language model a question without any website context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initPipeline(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		var temperature *float64
		if cmd.Flags().Changed("temperature") {
			temperature = &directTemperature
		}
		answer, err := app.Analyze.DirectQuestion(cmd.Context(), args[0], temperature)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, outputFormat, answer)
	},
}

func init() {
	askCmd.Flags().StringVar(&askURL, "url", "", "company website URL")
	askCmd.Flags().StringVar(&askQuestion, "question", "", "question to answer")
	_ = askCmd.MarkFlagRequired("url")
	_ = askCmd.MarkFlagRequired("question")

	directCmd.Flags().Float64Var(&directTemperature, "temperature", 0, "sampling temperature (0 to 2)")

	rootCmd.AddCommand(askCmd, directCmd)
}
