// Audit command lists recent entries from the execution journal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minibase-io/minibase/internal/audit"
)

var flagAuditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent executions from the audit journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "audit:", err)
			os.Exit(exitSysError)
		}

		journal, err := audit.Open(dataDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "audit:", err)
			os.Exit(exitSysError)
		}
		defer journal.Close()

		entries, err := journal.Recent(flagAuditLimit)
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}

		if flagJSON {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("no recorded executions")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-7s %-24s rev=%d  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Status, e.OpType, e.Revision, e.Detail)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().IntVar(&flagAuditLimit, "limit", 20, "maximum entries to list")
}
