package sources

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"library-compare/core/unify"
	"library-compare/core/utils"

	"github.com/goccy/go-json"
)

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner runs the command with os/exec, folding stderr into the error.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

// Epic lists the Epic Games library through the legendary CLI, which owns the
// Epic session.
type Epic struct {
	cfg EpicConfig
	run Runner
}

// NewEpic creates an Epic source. A nil runner uses os/exec.
func NewEpic(cfg EpicConfig, run Runner) *Epic {
	if run == nil {
		run = execRunner
	}
	return &Epic{cfg: cfg, run: run}
}

func (s *Epic) Platform() unify.Platform { return unify.Epic }

func (s *Epic) Enabled() bool {
	return s.cfg.Enabled && s.cfg.LegendaryPath != ""
}

// FetchGames runs "legendary list --json" and maps each app to the shape the
// engine reads.
func (s *Epic) FetchGames(ctx context.Context) ([]unify.RawGame, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	out, err := s.run(ctx, s.cfg.LegendaryPath, "list", "--json")
	if err != nil {
		return nil, fmt.Errorf("epic: %w", err)
	}
	return ParseLegendaryList(out)
}

// ParseLegendaryList converts legendary's JSON app list. Empty output is an empty library.
func ParseLegendaryList(out []byte) ([]unify.RawGame, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return []unify.RawGame{}, nil
	}

	var apps []map[string]any
	if err := json.Unmarshal(out, &apps); err != nil {
		return nil, fmt.Errorf("epic: decode legendary list: %w", err)
	}

	games := make([]unify.RawGame, 0, len(apps))
	for _, app := range apps {
		appName := utils.ToString(app["app_name"])
		title := utils.ToString(app["app_title"])
		if title == "" {
			title = appName
		}

		game := unify.RawGame{
			"catalogItemId": appName,
			"title":         title,
		}
		if meta, ok := utils.ToMap(app["metadata"]); ok {
			for _, key := range []string{"description", "developer", "publisher", "keyImages", "categories", "releaseDate", "lastModifiedDate"} {
				if v, ok := meta[key]; ok && v != nil {
					game[key] = v
				}
			}
		}
		games = append(games, game)
	}
	return games, nil
}
