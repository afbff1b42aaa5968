package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reeselc/centsible/internal/api"
	"github.com/reeselc/centsible/internal/statement"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the categorization HTTP API",
		Long: `Expose categorization over HTTP: POST statement text to /process,
corrections to /learn and /batch-learn, and read /categories, /patterns
and /metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			addr := viper.GetString("server.addr")
			if addr == "" {
				addr = ":8080"
			}

			server := api.NewServer(store, statement.NewParser())
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "address to listen on")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
