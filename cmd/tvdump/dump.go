package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/g2mt/zig/internal/valcache"
	"github.com/g2mt/zig/internal/value"
)

var (
	dumpDepth        int
	dumpMaxItems     int
	dumpMaxStringLen int
	dumpLimitsPath   string
	dumpParallel     bool
	dumpJobs         int
	dumpCacheDir     string
)

func init() {
	defaults := value.DefaultRenderLimits()
	dumpCmd.Flags().IntVar(&dumpDepth, "depth", 3, "maximum rendering depth")
	dumpCmd.Flags().IntVar(&dumpMaxItems, "max-items", defaults.MaxAggregateItems, "maximum aggregate elements shown")
	dumpCmd.Flags().IntVar(&dumpMaxStringLen, "max-string-len", defaults.MaxStringLen, "maximum string bytes shown")
	dumpCmd.Flags().StringVar(&dumpLimitsPath, "limits", "", "TOML file with a [render] table overriding the flags")
	dumpCmd.Flags().BoolVar(&dumpParallel, "parallel", false, "render corpus entries concurrently")
	dumpCmd.Flags().IntVar(&dumpJobs, "jobs", 0, "number of workers for --parallel (0 = GOMAXPROCS)")
	dumpCmd.Flags().StringVar(&dumpCacheDir, "cache-dir", "", "cache rendered text under this directory")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Render the built-in constant corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		depth := dumpDepth
		limits := value.RenderLimits{
			MaxAggregateItems: dumpMaxItems,
			MaxStringLen:      dumpMaxStringLen,
		}
		if dumpLimitsPath != "" {
			var err error
			depth, limits, err = loadLimits(dumpLimitsPath, depth, limits)
			if err != nil {
				return err
			}
		}

		ctx, entries, err := buildCorpus()
		if err != nil {
			return err
		}

		var disk *valcache.DiskCache
		if dumpCacheDir != "" {
			disk, err = valcache.OpenDiskCache(dumpCacheDir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
		}

		texts := make([]string, len(entries))
		renderOne := func(i int) error {
			text, err := renderEntry(entries[i].TV, depth, limits, ctx, disk)
			if err != nil {
				return fmt.Errorf("render %s: %w", entries[i].Name, err)
			}
			texts[i] = text
			return nil
		}

		if dumpParallel {
			jobs := dumpJobs
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}
			g, gctx := errgroup.WithContext(context.Background())
			g.SetLimit(min(jobs, len(entries)))
			for i := range entries {
				i := i
				g.Go(func() error {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					return renderOne(i)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
		} else {
			for i := range entries {
				if err := renderOne(i); err != nil {
					return err
				}
			}
		}

		out := cmd.OutOrStdout()
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
		fmt.Fprintln(out, title.Render("constant corpus"))

		nameWidth := 0
		for _, e := range entries {
			if w := runewidth.StringWidth(e.Name); w > nameWidth {
				nameWidth = w
			}
		}
		for i, e := range entries {
			pad := strings.Repeat(" ", nameWidth-runewidth.StringWidth(e.Name))
			fmt.Fprintf(out, "  %s%s  %s\n", e.Name, pad, texts[i])
		}
		return nil
	},
}

// renderEntry renders one value, going through the disk tier when enabled.
func renderEntry(tv value.TypedValue, depth int, limits value.RenderLimits, ctx *value.Context, disk *valcache.DiskCache) (string, error) {
	var key valcache.Digest
	if disk != nil {
		var err error
		key, err = valcache.RenderKey(tv, depth, limits, ctx)
		if err != nil {
			return "", err
		}
		if cached, ok, err := disk.Get(key); err == nil && ok {
			return cached.Text, nil
		}
	}

	var sb strings.Builder
	if err := value.RenderLimited(&sb, tv, depth, limits, ctx); err != nil {
		return "", err
	}
	text := sb.String()

	if disk != nil {
		put := valcache.Rendered{
			Depth:        depth,
			MaxItems:     limits.MaxAggregateItems,
			MaxStringLen: limits.MaxStringLen,
			Text:         text,
		}
		if err := disk.Put(key, put); err != nil {
			return "", fmt.Errorf("cache write: %w", err)
		}
	}
	return text, nil
}
