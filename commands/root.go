package commands

import (
	"fmt"
	"os"

	"propshare/config"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	envDir     string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "propshare",
		Short:         "Property share booking backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "đường dẫn file cấu hình (yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.envDir, "env-dir", ".", "thư mục chứa .env")

	rootCmd.AddCommand(
		ServeCmd(opts),
		MigrateCmd(opts),
		RolloverCmd(opts),
	)
	return rootCmd
}

// Execute chạy CLI, thoát với mã 1 nếu lỗi
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile, o.envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
