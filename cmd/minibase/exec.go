// Exec command applies a single operation to the document.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minibase-io/minibase/pkg/types"
)

var execCmd = &cobra.Command{
	Use:   "exec <operation>",
	Short: "Execute one operation against the document",
	Long: `Exec applies a single JSON-encoded operation to the document.

The operation may be given inline, as @path to read a file, or as - to
read stdin.

Example:
  minibase exec '{"type":"create_table","table":"users","columns":[{"name":"id","data_type":"integer","primary_key":true}]}'
  minibase exec @op.json
  cat op.json | minibase exec -`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("read operation: %w", err)
	}

	var op types.Operation
	if err := json.Unmarshal(data, &op); err != nil {
		return fmt.Errorf("parse operation: %w", err)
	}

	sess, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "exec:", err)
		os.Exit(exitSysError)
	}
	defer sess.close()

	res, err := sess.exec.Execute(op)
	if err != nil {
		return fmt.Errorf("execute: %w", err)
	}

	if flagJSON {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printResult(res)
	}

	if res.Status == types.StatusError {
		sess.close()
		os.Exit(exitUserError)
	}
	return nil
}

// printResult renders one execution result in human-readable form.
func printResult(res types.ExecutionResult) {
	fmt.Printf("%s %s: %s\n", res.Status, res.Type, res.Detail)
	if res.Result == nil {
		return
	}
	for _, row := range res.Result.Rows {
		line := "  "
		for i, col := range res.Result.Columns {
			if i > 0 {
				line += "  "
			}
			line += fmt.Sprintf("%s=%v", col, row[col])
		}
		fmt.Println(line)
	}
	fmt.Printf("  (%d rows)\n", res.Result.RowCount)
}
