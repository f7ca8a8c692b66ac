// Plan command runs an ordered operation batch.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minibase-io/minibase/internal/engine"
	"github.com/minibase-io/minibase/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan <plan>",
	Short: "Execute an ordered batch of operations",
	Long: `Plan executes every operation of a JSON-encoded plan, in order.

A failed operation is recorded in its result and execution continues with
the next one. The plan may be given as @path, as -, or inline.

Example:
  minibase plan @migration.json
  cat plan.json | minibase plan -`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}

	var plan types.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("parse plan: %w", err)
	}
	if len(plan.Operations) == 0 {
		return fmt.Errorf("plan has no operations")
	}

	sess, err := openSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "plan:", err)
		os.Exit(exitSysError)
	}
	defer sess.close()

	result, err := engine.NewRunner(sess.exec).Run(plan)
	if err != nil {
		return fmt.Errorf("run plan: %w", err)
	}

	if flagJSON {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		fmt.Println("plan", result.PlanID)
		for i, res := range result.Results {
			fmt.Printf("  %d. %s %s: %s\n", i+1, res.Status, res.Type, res.Detail)
		}
		for _, w := range result.Warnings {
			fmt.Println("warning:", w)
		}
	}

	for _, res := range result.Results {
		if res.Status == types.StatusError {
			sess.close()
			os.Exit(exitUserError)
		}
	}
	return nil
}
