package main

import (
	"os"

	"github.com/spf13/cobra"
)

// lambdaCmd hands the demo API to the Lambda runtime.
var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run under the AWS Lambda runtime",
	Long: `Run the demo API as an API Gateway proxy integration. This command only
works inside the Lambda execution environment and never returns.`,
	RunE: func(*cobra.Command, []string) error {
		rt, err := setup(os.Stderr)
		if err != nil {
			return err
		}
		rt.app.Start(demoRoutes().handle)
		return nil
	},
}
