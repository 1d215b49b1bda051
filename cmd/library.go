package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"library-compare/core/unify"
	"library-compare/feature/library"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// libraryCmd prints the unified library
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Print the unified game library",
	Long: `Fetches every configured platform (or reads the cache), merges the lists by
normalized title and prints the result as a table or JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetBool("refresh")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		only, _ := cmd.Flags().GetString("platform")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		var filter unify.Platform
		if only != "" {
			if filter, err = unify.ParsePlatform(only); err != nil {
				return err
			}
		}

		start := time.Now()
		svc := library.NewService(rt.sources, rt.cache, rt.logger)
		games, err := svc.Library(cmd.Context(), refresh)
		if err != nil {
			return fmt.Errorf("failed to build library: %w", err)
		}

		if filter != "" {
			kept := make([]unify.UnifiedGame, 0, len(games))
			for _, g := range games {
				if g.Has(filter) {
					kept = append(kept, g)
				}
			}
			games = kept
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(games)
		}

		fmt.Println(renderLibrary(games))
		rt.logger.Debug("Library printed", zap.Int("games", len(games)), zap.Duration("took", time.Since(start)))
		return nil
	},
}

func renderLibrary(games []unify.UnifiedGame) string {
	rows := make([][]string, 0, len(games))
	total := 0
	for _, g := range games {
		keys := make([]string, 0, len(g.Platforms))
		seen := make(map[unify.Platform]bool)
		for _, entry := range g.Platforms {
			if !seen[entry.Name] {
				seen[entry.Name] = true
				keys = append(keys, entry.Name.Key())
			}
		}

		playtime := "-"
		if len(g.Playtime) > 0 {
			playtime = unify.FormatPlaytime(g.TotalPlaytime())
			total += g.TotalPlaytime()
		}
		rows = append(rows, []string{g.Name, strings.Join(keys, ", "), playtime})
	}

	return renderTable(
		[]string{"Name", "Platforms", "Playtime"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
		strconv.Itoa(len(games))+" games", "", unify.FormatPlaytime(total),
	)
}

func init() {
	RootCmd.AddCommand(libraryCmd)
	libraryCmd.Flags().Bool("refresh", false, "Ignore cached snapshots and fetch every platform")
	libraryCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	libraryCmd.Flags().String("platform", "", "Only show games owned on this platform")
}
