package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"jvscan/internal/config"
	"jvscan/internal/java"
	"jvscan/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	rescan     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the system for Java runtimes and cache the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		runtimes, complete := a.discover(cmd.Context(), jsonOutput)
		if complete {
			a.refreshCache(runtimes)
		}

		if jsonOutput {
			return writeJSON(os.Stdout, runtimes)
		}
		printRuntimes(os.Stdout, runtimes, a.settings.DefaultJavaPath)
		if len(runtimes) > 0 {
			checkForUpdateBackground(a)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List Java runtimes, scanning only when the cache is stale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		cached := !rescan && a.settings.Fresh(time.Duration(a.settings.CacheTTL), time.Now())
		runtimes := a.settings.Runtimes
		if !cached {
			var complete bool
			runtimes, complete = a.discover(cmd.Context(), jsonOutput)
			if complete {
				a.refreshCache(runtimes)
			}
		}

		if jsonOutput {
			return writeJSON(os.Stdout, runtimes)
		}
		printRuntimes(os.Stdout, runtimes, a.settings.DefaultJavaPath)
		if cached {
			fmt.Println(theme.Faint.Render(fmt.Sprintf("Cached %s. Run 'jvscan list --rescan' to refresh.", humanize.Time(a.settings.CachedAt))))
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check that a path is a usable Java runtime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		rt, err := a.detector().Validate(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(os.Stdout, rt)
		}
		fmt.Println(theme.SuccessMessage("Valid Java runtime"))
		printRuntime(os.Stdout, rt)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{scanCmd, listCmd, validateCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
	}
	listCmd.Flags().BoolVar(&rescan, "rescan", false, "ignore the cache and scan again")
}

// printRuntimes renders runtimes newest first, marking the default one
func printRuntimes(w io.Writer, runtimes []java.Runtime, defaultPath string) {
	if len(runtimes) == 0 {
		fmt.Fprintln(w, theme.WarningStyle.Render("No Java installations found."))
		fmt.Fprintln(w, theme.InfoStyle.Render("Use 'jvscan add-path <dir>' to scan another directory."))
		return
	}

	fmt.Fprintln(w, theme.Title.Render("Java Runtimes:"))
	fmt.Fprintln(w)

	for _, rt := range runtimes {
		marker := "  "
		version := rt.Version
		if defaultPath != "" && config.SamePath(rt.Path, defaultPath) {
			marker = "→ "
			version = theme.CurrentStyle.Render(rt.Version)
		}

		fmt.Fprintf(w, "%s%s %s %s %s\n",
			marker,
			pad(theme.Major(rt.MajorVersion), 4),
			pad(version, 15),
			pad(theme.Faint.Render(rt.Vendor+" "+arch(rt)), 16),
			rt.Path)
	}
	fmt.Fprintln(w)
}

// printRuntime renders one runtime as labeled fields
func printRuntime(w io.Writer, rt java.Runtime) {
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Path:     "), theme.PathStyle.Render(rt.Path))
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Version:  "), theme.CurrentStyle.Render(rt.Version))
	fmt.Fprintf(w, "%s %d\n", theme.LabelStyle.Render("Major:    "), rt.MajorVersion)
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Vendor:   "), rt.Vendor)
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Arch:     "), arch(rt))
}

func arch(rt java.Runtime) string {
	if rt.Is64Bit {
		return "64-bit"
	}
	return "32-bit"
}

// pad right-pads s to width visible columns
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runtimesForSelection prefers a fresh cache over a new scan
func runtimesForSelection(ctx context.Context, a *app) []java.Runtime {
	if a.settings.Fresh(time.Duration(a.settings.CacheTTL), time.Now()) {
		return a.settings.Runtimes
	}
	runtimes, complete := a.discover(ctx, false)
	if complete {
		a.refreshCache(runtimes)
	}
	return runtimes
}
