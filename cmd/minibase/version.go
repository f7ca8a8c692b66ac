// Version command for the minibase CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibase-io/minibase/pkg/minibase"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the minibase version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("minibase", minibase.Version)
	},
}
