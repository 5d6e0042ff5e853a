package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
)

// Version is set at build time via -ldflags "-X github.com/nextlevelbuilder/pbgate/cmd.Version=v1.0.0"
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pbgate",
	Short: "pbgate: protobuf bot gateway",
	Long:  "pbgate bridges IM accounts to plugin processes over protobuf WebSocket frames: QR and password login, event fan-out, and an admin HTTP API.",
	Run: func(cmd *cobra.Command, args []string) {
		runGateway()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: pbgate.json5 or $PBGATE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(driversCmd())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pbgate %s\n", Version)
		},
	}
}

func driversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the compiled-in IM drivers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range driver.Drivers() {
				fmt.Println(name)
			}
		},
	}
}

func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if v := os.Getenv("PBGATE_CONFIG"); v != "" {
		return v
	}
	return "pbgate.json5"
}

// Execute runs the root cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
