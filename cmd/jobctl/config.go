package main

import (
	"fmt"

	"go-gig-router/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(); err != nil {
				return err
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if validate {
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid config: %w", err)
				}
			}

			redacted := *cfg
			if redacted.TelegramToken != "" {
				redacted.TelegramToken = "***"
			}
			if output == "json" {
				return writeJSON(cmd.OutOrStdout(), redacted)
			}
			out, err := yaml.Marshal(redacted)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "fail if the bot could not start with this config")
	return cmd
}
