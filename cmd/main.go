package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Maddesumit/synthetic-arb-engine/cmd/cli"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

var (
	logMode    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "arb-engine",
	Short: "Synthetic Arbitrage Detection Engine",
	Long:  `Detects synthetic arbitrage opportunities across crypto exchanges with built-in performance monitoring`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch logMode {
		case "debug", "pretty", "info", "prod", "test":
			logger.InitWithMode(logger.LogMode(logMode))
		default:
			logger.InitWithMode(logger.LogModePretty)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunEngine(configPath)
	},
}

var engineCmd = &cobra.Command{
	Use:   "engine",
	Short: "Start the arbitrage engine",
	Run: func(cmd *cobra.Command, args []string) {
		cli.RunEngine(configPath)
	},
}

func main() {
	rootCmd.AddCommand(engineCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log", "pretty", "Log mode: debug, pretty, info, prod, test")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Path to the engine config file")
}
