package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"jvscan/internal/config"
	"jvscan/internal/java"
	"jvscan/internal/logging"
	"jvscan/internal/theme"
	"jvscan/internal/updater"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set during build time via ldflags
var Version = "dev"

var (
	verbose    bool
	configFile string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "jvscan",
	Short: "Find every Java runtime on this machine",
	Long: theme.Title.Render("jvscan") + theme.Subtitle.Render(" - Java runtime discovery") + `

jvscan locates Java installations in standard install roots, IDE and build-tool
caches, version managers and game launcher folders, runs each one to learn its
version and vendor, and lists them newest first.

` + theme.Subtitle.Render("Examples:") + `
  jvscan scan                   Scan and list all Java runtimes
  jvscan list                   List runtimes (cached for a day)
  jvscan validate /opt/jdk/bin/java
  jvscan select                 Choose the default runtime interactively`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every skipped directory and failed probe")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (default is $XDG_CONFIG_HOME/jvscan/settings.json)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "time limit for probing one candidate (default from settings, 10s)")

	rootCmd.AddCommand(scanCmd, listCmd, validateCmd)
	rootCmd.AddCommand(defaultCmd, selectCmd)
	rootCmd.AddCommand(addCmd, removeCmd, pathsCmd, addPathCmd, removePathCmd, cacheCmd)
	rootCmd.AddCommand(updateCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorMessage(err.Error()))
		os.Exit(1)
	}
}

// app bundles the settings of one invocation with the discovery engine
type app struct {
	store    *config.JSONStore
	settings *config.Settings
	conv     java.Conventions
	runner   java.Runner
}

func loadApp() (*app, error) {
	store := config.NewJSONStore(configFile)
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	return &app{
		store:    store,
		settings: settings,
		conv:     java.HostConventions(),
		runner:   java.ExecRunner{},
	}, nil
}

func (a *app) probeTimeout() time.Duration {
	if timeout > 0 {
		return timeout
	}
	return time.Duration(a.settings.ProbeTimeout)
}

func (a *app) detector(opts ...java.DetectorOption) *java.Detector {
	prober := java.NewProber(a.conv, a.runner, a.probeTimeout())
	return java.NewDetector(a.conv, a.locator(), prober, opts...)
}

func (a *app) locator() *java.Locator {
	return java.NewLocator(a.conv, java.HostEnvironment(a.conv, a.runner, a.probeTimeout()),
		java.WithSearchPaths(a.settings.SearchPaths...),
		java.WithCustomHomes(a.settings.CustomPaths...),
	)
}

// discover runs a full scan, drawing progress when attached to a terminal.
// complete is false when the scan was interrupted.
func (a *app) discover(ctx context.Context, quiet bool) (runtimes []java.Runtime, complete bool) {
	interrupted := false

	if quiet || verbose || !term.IsTerminal(int(os.Stdout.Fd())) {
		runtimes = a.detector().Discover(ctx)
		interrupted = ctx.Err() != nil
	} else {
		scanner := java.NewScanner(os.Stdout)
		det := a.detector(java.WithProgress(scanner.Report))
		stopped, err := scanner.Run(ctx, func(ctx context.Context) {
			runtimes = det.Discover(ctx)
		})
		if err != nil {
			logging.Debugf("progress display failed: %v", err)
		}
		interrupted = stopped || ctx.Err() != nil
	}

	if interrupted {
		logging.Infof("scan interrupted, showing the %d runtimes found so far", len(runtimes))
	}
	return runtimes, !interrupted
}

// refreshCache stores a discovery result, warning when it cannot be saved
func (a *app) refreshCache(runtimes []java.Runtime) {
	a.settings.Cache.Store(runtimes, time.Now())
	if err := a.store.Save(a.settings); err != nil {
		logging.Warnf("could not cache results: %v", err)
	}
}

// save writes settings back
func (a *app) save() error {
	if err := a.store.Save(a.settings); err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s %s\n",
			theme.Subtitle.Render("Java runtime discovery (jvscan)"),
			theme.Faint.Render("version"),
			theme.HighlightText(Version))
	},
}

// checkForUpdateBackground prints a notice when a newer release exists.
// It runs at most once per updater.CheckInterval.
func checkForUpdateBackground(a *app) {
	upd, err := updater.NewUpdater(a.store, a.settings, Version)
	if err != nil || !upd.ShouldCheckForUpdate() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	release, err := upd.CheckForUpdate(ctx)
	if err != nil || release == nil {
		logging.Debugf("background update check: %v", err)
		return
	}
	updater.WriteNotice(os.Stdout, updater.NewOffer(Version, release), len(a.settings.Runtimes))
}
