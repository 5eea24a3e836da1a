package main

import (
	"github.com/spf13/cobra"

	"github.com/khoahotran/apex-portal/internal/config"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

type rootOptions struct {
	configDir string
	cfg       config.Config
	log       logger.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operator tasks for the Apex portal backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logger.NewZapLogger(cfg.App.Env)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "directory holding .env and config.yaml")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedUserCommand(opts))

	return cmd
}
