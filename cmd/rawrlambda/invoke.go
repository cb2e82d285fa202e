package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/spf13/cobra"
)

var eventFile string

// invokeCmd runs a single event through the demo API.
var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Invoke the demo API with one API Gateway event",
	Long: `Read an API Gateway proxy event from a file (or stdin with "-"), run it
through the demo API and print the response as JSON.

Examples:
  # Invoke with an event file
  rawrlambda invoke --event testdata/hello.json

  # Invoke from stdin
  echo '{"httpMethod":"GET","path":"/hello"}' | rawrlambda invoke --event -`,
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringVar(&eventFile, "event", "-", "event file, - for stdin")
}

func runInvoke(cmd *cobra.Command, _ []string) error {
	raw, err := readEvent(cmd.InOrStdin(), eventFile)
	if err != nil {
		return err
	}
	var ev events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("failed to parse event: %w", err)
	}

	rt, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	resp, err := rt.app.Lambda(demoRoutes().handle)(cmd.Context(), ev)
	if err != nil {
		return fmt.Errorf("invocation failed: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func readEvent(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event %s: %w", path, err)
	}
	return b, nil
}
