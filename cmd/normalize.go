package cmd

import (
	"fmt"

	"library-compare/core/unify"

	"github.com/spf13/cobra"
)

// normalizeCmd shows how titles collapse into merge keys
var normalizeCmd = &cobra.Command{
	Use:   "normalize <title>...",
	Short: "Print the merge key and display name of titles",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rows := make([][]string, 0, len(args))
		for _, title := range args {
			rows = append(rows, []string{title, unify.Normalize(title), unify.CleanTitle(title)})
		}
		fmt.Println(renderTable([]string{"Title", "Key", "Display"}, rows, nil))
	},
}

func init() {
	RootCmd.AddCommand(normalizeCmd)
}
