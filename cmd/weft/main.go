package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "weft",
	Short:   "Composable static file server",
	Long: `Weft serves a directory tree over HTTP with conditional-request
and byte-range support, built from the weft app-composition library.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd)
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "document root to serve (default: ./public, env: WEFT_FILES_ROOT)")

	_ = viper.BindPFlag("files.root", rootCmd.PersistentFlags().Lookup("root"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
