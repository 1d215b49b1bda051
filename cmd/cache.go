package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"library-compare/core/cache"
	"library-compare/core/unify"

	"github.com/spf13/cobra"
)

// cacheCmd groups snapshot cache commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear cached library snapshots",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cached snapshots with their age",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		status, err := rt.cache.Status(cmd.Context())
		if err != nil {
			return err
		}
		if len(status) == 0 {
			fmt.Println("Cache is empty")
			return nil
		}
		fmt.Println(renderCacheStatus(status))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [platform]",
	Short: "Clear every snapshot, or one platform and the unified list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p *unify.Platform
		if len(args) == 1 {
			parsed, err := unify.ParsePlatform(args[0])
			if err != nil {
				return err
			}
			p = &parsed
		}

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if p == nil {
			if err := rt.cache.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Cache cleared")
			return nil
		}
		if err := rt.cache.ClearPlatform(cmd.Context(), *p); err != nil {
			return err
		}
		fmt.Printf("Cleared %s and unified snapshots\n", *p)
		return nil
	},
}

func renderCacheStatus(status map[string]cache.Entry) string {
	scopes := make([]string, 0, len(status))
	for scope := range status {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	rows := make([][]string, 0, len(scopes))
	for _, scope := range scopes {
		e := status[scope]
		state := "fresh"
		if e.Expired {
			state = "expired"
		}
		rows = append(rows, []string{scope, strconv.Itoa(e.Count), e.Age, state})
	}
	return renderTable(
		[]string{"Scope", "Count", "Age", "State"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	)
}

func init() {
	RootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)
}
