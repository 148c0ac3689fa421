package commands

import (
	"fmt"

	"propshare/config"

	"github.com/spf13/cobra"
)

func MigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate các bảng và seed roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			l, err := config.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer l.Sync()

			db, err := config.ConnectDB(cfg.Database, cfg.App.Debug, l)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := config.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("migrate failed: %w", err)
			}
			l.Info("Migrate thành công")
			return nil
		},
	}
}
