package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/server"
	"github.com/spigell/staffmatch/internal/staff"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"dataset":        "dataset",
			"server.address": "address",
		})
	},
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("dataset", "", "dataset file to start from (default is generated data)")
	serveCmd.Flags().StringP("address", "a", server.DefaultAddress, "address to listen on")
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, config := setup()

	dataset, err := loadDataset(config.Dataset, l)
	if err != nil {
		l.Fatal("loading dataset", zap.Error(err))
	}

	srv := server.New(staff.NewRoster(dataset), newAssistant(ctx, config.AI, l), l)

	if err := srv.Run(ctx, config.Server.Address); err != nil {
		l.Fatal("serving dashboard api", zap.Error(err))
	}
}
