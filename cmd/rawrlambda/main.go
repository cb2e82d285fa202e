// Package main implements rawrlambda, a demo binary that serves a small
// composed API either through the Lambda runtime or a local HTTP server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// envFiles are dotenv files loaded before the environment is parsed.
	envFiles []string
	version  = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rawrlambda",
	Short: "Demo API built from composed Lambda handlers",
	Long: `rawrlambda wires the demo routes GET /hello, POST /echo and GET /boom
through request ids, JSON bodies, error rendering, CORS, caching and metrics.

Settings come from RAWR_* environment variables and an optional .env file.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env when present)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(invokeCmd)
}
