package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ship-fault-report",
	Short: "Ship fault report aggregation and reliability metrics",
	Long: `ship-fault-report keeps the vessel equipment fault log (notulensi kerusakan)
and serves status counts, MTBF / MTTR rankings and trends over HTTP.

Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./config/config.yaml)")
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(hashPasswordCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
