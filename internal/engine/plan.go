package engine

import (
	"fmt"

	"github.com/minibase-io/minibase/pkg/types"
)

// Runner executes ordered operation plans against one document store.
type Runner struct {
	exec *Executor
}

// NewRunner wraps an Executor for plan execution.
func NewRunner(exec *Executor) *Runner {
	return &Runner{exec: exec}
}

// Run executes every operation in the plan, in order, and never stops
// early: a failed operation is recorded in its result and execution
// continues with the next one. The document is flushed once at the end
// so deferred sync strategies still leave the plan's effects on disk.
func (r *Runner) Run(plan types.Plan) (types.PlanResult, error) {
	planID := plan.ID
	if planID == "" {
		planID = newExecutionID()
	}

	result := types.PlanResult{
		PlanID:   planID,
		Results:  make([]types.ExecutionResult, 0, len(plan.Operations)),
		Warnings: append([]string(nil), plan.Warnings...),
	}

	succeeded, skipped, failed := 0, 0, 0
	for _, op := range plan.Operations {
		res, err := r.exec.execute(op, planID)
		if err != nil {
			return result, err
		}
		result.Results = append(result.Results, res)
		switch res.Status {
		case types.StatusSuccess:
			succeeded++
		case types.StatusSkipped:
			skipped++
		case types.StatusError:
			failed++
		}
	}

	if failed > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d of %d operations failed (%d succeeded, %d skipped)",
				failed, len(plan.Operations), succeeded, skipped))
	}

	if err := r.exec.store.Flush(); err != nil {
		return result, err
	}
	summary, err := r.exec.store.Summary()
	if err != nil {
		return result, err
	}
	result.Summary = summary
	return result, nil
}

// NewPlanID generates a UUID v7 plan identifier.
func NewPlanID() string {
	return newExecutionID()
}
