// Tables command summarizes the document's tables and roles.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Summarize the document's tables and roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			fmt.Fprintln(os.Stderr, "tables:", err)
			os.Exit(exitSysError)
		}
		defer sess.close()

		summary, err := sess.store.Summary()
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}

		if flagJSON {
			return printJSON(summary)
		}

		fmt.Printf("revision %d (schema v%d)\n", summary.Revision, summary.SchemaVersion)
		if len(summary.Tables) == 0 {
			fmt.Println("no tables")
		}
		for _, table := range summary.Tables {
			fmt.Printf("%s: %d rows\n", table.Name, table.RowCount)
			for _, col := range table.Columns {
				attrs := []string{string(col.DataType)}
				if col.PrimaryKey {
					attrs = append(attrs, "primary key")
				}
				if col.Nullable {
					attrs = append(attrs, "nullable")
				}
				if col.Default != nil {
					attrs = append(attrs, fmt.Sprintf("default %v", col.Default))
				}
				fmt.Printf("  %s (%s)\n", col.Name, strings.Join(attrs, ", "))
			}
			for _, perm := range table.Permissions {
				privs := make([]string, len(perm.Privileges))
				for i, p := range perm.Privileges {
					privs[i] = string(p)
				}
				fmt.Printf("  grant %s: %s\n", perm.Role, strings.Join(privs, ", "))
			}
		}
		for _, role := range summary.Roles {
			fmt.Println("role:", role.Name)
		}
		return nil
	},
}
