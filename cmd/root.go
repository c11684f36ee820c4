package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/spf13/cobra"
	"github.com/trooper-recruit/engage-api/internal/app"
	"github.com/trooper-recruit/engage-api/internal/kafka"
	"github.com/trooper-recruit/engage-api/internal/server"
)

var rootCmd = &cobra.Command{
	Use:           "engage-api",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			server.StartServer,
			kafka.StartConsumeEvents,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
