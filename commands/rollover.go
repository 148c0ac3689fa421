package commands

import (
	"propshare/config"
	"propshare/jobs"
	"propshare/services/allocation"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func RolloverCmd(opts *rootOptions) *cobra.Command {
	var poolSize int
	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Sinh các năm sở hữu còn thiếu cho mọi lần mua cổ phần",
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

			if poolSize <= 0 {
				poolSize = cfg.Jobs.RolloverPoolSize
			}
			allocator := allocation.NewAllocator(allocation.Options{DB: db, Logger: l})
			result, err := jobs.RunRollover(cmd.Context(), allocator, poolSize, l)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		},
	}
	cmd.Flags().IntVar(&poolSize, "pool-size", 0, "số worker, mặc định lấy từ jobs.rollover_pool_size")
	return cmd
}
