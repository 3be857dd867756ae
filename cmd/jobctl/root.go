package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go-gig-router/internal/categorizer"
	"go-gig-router/internal/classifier"
	"go-gig-router/internal/config"
	"go-gig-router/internal/filter"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	output  string
)

// newRootCmd returns the operator CLI: offline classification, config
// inspection and a dry-run scrape.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jobctl",
		Short:         "Inspect and exercise the gig router without posting to Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $CONFIG_PATH or configs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: json|text")

	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScrapeCmd())
	return rootCmd
}

func loadClassifier() (*config.Config, *classifier.Classifier, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, classifier.New(filter.New(cfg.Forbidden()), categorizer.New(cfg.Keywords())), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkOutput() error {
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q (want json or text)", output)
	}
	return nil
}
