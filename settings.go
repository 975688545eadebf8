package main

import (
	"fmt"
	"os"

	"jvscan/internal/config"
	"jvscan/internal/java"
	"jvscan/internal/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var defaultCmd = &cobra.Command{
	Use:   "default [path]",
	Short: "Show the default Java runtime, or validate and set it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		det := a.detector()

		if len(args) == 1 {
			rt, err := det.Validate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.settings.DefaultJavaPath = rt.Path
			if err := a.save(); err != nil {
				return err
			}
			fmt.Println(theme.SuccessMessage(fmt.Sprintf("Default set to Java %s", rt.Version)))
			printRuntime(os.Stdout, rt)
			return nil
		}

		fmt.Println(theme.Title.Render("Default Java"))
		fmt.Println()

		if a.settings.DefaultJavaPath == "" {
			fmt.Println(theme.WarningStyle.Render("No default runtime set"))
			fmt.Println(theme.Faint.Render("Run 'jvscan default <path>' or 'jvscan select' to choose one"))
			return nil
		}

		rt, err := det.Validate(cmd.Context(), a.settings.DefaultJavaPath)
		if err != nil {
			fmt.Printf("%s %s\n", theme.LabelStyle.Render("Path:     "), theme.PathStyle.Render(a.settings.DefaultJavaPath))
			fmt.Println()
			fmt.Println(theme.WarningMessage("The default runtime no longer runs"))
			fmt.Println(theme.Faint.Render("Use 'jvscan select' to pick another one"))
			return nil
		}
		printRuntime(os.Stdout, rt)
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Choose the default Java runtime interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		runtimes := runtimesForSelection(cmd.Context(), a)
		if len(runtimes) == 0 {
			fmt.Println(theme.WarningStyle.Render("No Java installations found."))
			return nil
		}

		target, err := selectRuntime(runtimes, a.settings.DefaultJavaPath)
		if err != nil {
			fmt.Println(theme.WarningStyle.Render(fmt.Sprintf("Selection cancelled: %v", err)))
			return nil
		}
		if config.SamePath(target.Path, a.settings.DefaultJavaPath) {
			fmt.Println(theme.InfoStyle.Render(fmt.Sprintf("Already using Java %s. No changes needed.", target.Version)))
			return nil
		}

		confirmed, err := confirmAction(
			fmt.Sprintf("Use Java %s by default?", target.Version),
			fmt.Sprintf("Path: %s", target.Path),
		)
		if err != nil || !confirmed {
			fmt.Println(theme.WarningStyle.Render("Operation cancelled."))
			return nil
		}

		a.settings.DefaultJavaPath = target.Path
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(theme.SuccessMessage(fmt.Sprintf("Default set to Java %s", target.Version)))
		return nil
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show every directory scanned for Java runtimes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		fmt.Println(theme.Title.Render("Java Search Paths"))
		fmt.Println()
		fmt.Println(theme.LabelStyle.Render(fmt.Sprintf("Scan roots (%s):", a.conv.Platform)))
		fmt.Println()

		rows := []string{lipgloss.JoinHorizontal(lipgloss.Left,
			theme.TableHeader.Width(58).Render("Path"),
			theme.TableHeader.Width(16).Render("Strategy"),
			theme.TableHeader.Render("Status"),
		)}
		for _, root := range a.locator().Roots() {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
				theme.TableCell.Width(58).Render(root.Path),
				theme.TableCell.Width(16).Render(theme.ScanStrategy(root.Strategy.String(), root.Depth)),
				dirStatus(root.Path),
			))
		}
		fmt.Println(theme.TableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
		fmt.Println()

		if len(a.settings.SearchPaths) == 0 {
			fmt.Println(theme.InfoStyle.Render("No custom search paths configured."))
			fmt.Println(theme.Faint.Render("Use 'jvscan add-path <directory>' to add one."))
		}
		for _, home := range a.settings.CustomPaths {
			fmt.Printf("%s %s %s\n", theme.LabelStyle.Render("Java home:"), home, dirStatus(home))
		}
		return nil
	},
}

var addPathCmd = &cobra.Command{
	Use:   "add-path <directory>",
	Short: "Add a directory to scan for Java runtimes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			return fmt.Errorf("invalid directory path: %s", path)
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		if !a.settings.AddSearchPath(path) {
			fmt.Println(theme.WarningStyle.Render("This search path is already configured."))
			return nil
		}
		// Roots changed, so the cached list may be incomplete
		a.settings.Cache.Clear()
		if err := a.save(); err != nil {
			return err
		}

		fmt.Println(theme.SuccessMessage("Added search path:"))
		fmt.Println("  " + theme.PathStyle.Render(path))
		fmt.Println(theme.Faint.Render("Run ") + theme.Code.Render("jvscan scan") + theme.Faint.Render(" to see detected runtimes"))
		return nil
	},
}

var removePathCmd = &cobra.Command{
	Use:   "remove-path [directory]",
	Short: "Stop scanning a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			if len(a.settings.SearchPaths) == 0 {
				fmt.Println(theme.InfoMessage("No custom search paths to remove"))
				return nil
			}
			path, err = choosePath("Select Search Path to Remove", a.settings.SearchPaths)
			if err != nil {
				fmt.Println(theme.WarningStyle.Render(fmt.Sprintf("Selection cancelled: %v", err)))
				return nil
			}
		}

		if !a.settings.RemoveSearchPath(path) {
			fmt.Println(theme.WarningStyle.Render("This path is not in the search paths list."))
			return nil
		}
		a.settings.Cache.Clear()
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(theme.SuccessMessage("Removed search path."))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <java-home>",
	Short: "Add a Java installation outside the scanned roots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		home := args[0]

		a, err := loadApp()
		if err != nil {
			return err
		}
		if a.settings.HasCustomPath(home) {
			fmt.Println(theme.WarningStyle.Render("This path is already in the custom paths list."))
			return nil
		}

		rt, err := a.detector().Validate(cmd.Context(), a.conv.Join(home, "bin", a.conv.Executable))
		if err != nil {
			fmt.Println(theme.Faint.Render("Make sure the path contains " + a.conv.Join("bin", a.conv.Executable)))
			return err
		}

		confirmed, err := confirmAction(
			fmt.Sprintf("Add Java %s?", rt.Version),
			fmt.Sprintf("Path: %s", home),
		)
		if err != nil || !confirmed {
			fmt.Println(theme.WarningStyle.Render("Operation cancelled."))
			return nil
		}

		a.settings.AddCustomPath(home)
		a.settings.Cache.Clear()
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(theme.SuccessMessage(fmt.Sprintf("Added Java %s to custom paths.", rt.Version)))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [java-home]",
	Short: "Remove a custom Java installation",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		var home string
		if len(args) == 1 {
			home = args[0]
		} else {
			if len(a.settings.CustomPaths) == 0 {
				fmt.Println(theme.InfoMessage("No custom Java installations to remove"))
				fmt.Println("  " + theme.Faint.Render("Use ") + theme.Code.Render("jvscan add <path>") + theme.Faint.Render(" to add one"))
				return nil
			}
			home, err = choosePath("Select Java Installation to Remove", a.settings.CustomPaths)
			if err != nil {
				fmt.Println(theme.WarningStyle.Render(fmt.Sprintf("Selection cancelled: %v", err)))
				return nil
			}
		}

		if !a.settings.RemoveCustomPath(home) {
			fmt.Println(theme.WarningStyle.Render("This path is not in the custom paths list."))
			return nil
		}
		a.settings.Cache.Clear()
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(theme.SuccessMessage("Removed custom Java installation."))
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the cached runtime list",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the cached runtime list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		a.settings.Cache.Clear()
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(theme.SuccessMessage("Cache cleared."))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

// selectRuntime shows an interactive selector, default runtime first
func selectRuntime(runtimes []java.Runtime, current string) (*java.Runtime, error) {
	ordered := make([]java.Runtime, 0, len(runtimes))
	for _, rt := range runtimes {
		if config.SamePath(rt.Path, current) {
			ordered = append(ordered, rt)
		}
	}
	for _, rt := range runtimes {
		if !config.SamePath(rt.Path, current) {
			ordered = append(ordered, rt)
		}
	}

	options := make([]huh.Option[int], len(ordered))
	for i, rt := range ordered {
		label := fmt.Sprintf("%s %s %s",
			pad(theme.CurrentStyle.Render(rt.Version), 15),
			rt.Path,
			theme.Faint.Render("("+rt.Vendor+")"))
		if config.SamePath(rt.Path, current) {
			label += " " + theme.Faint.Render("[default]")
		}
		options[i] = huh.NewOption(label, i)
	}

	var selected int
	err := huh.NewSelect[int]().
		Title(theme.Subtitle.Render("Select Java Runtime")).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return nil, err
	}
	return &ordered[selected], nil
}

// choosePath shows an interactive selector over configured directories
func choosePath(title string, paths []string) (string, error) {
	options := make([]huh.Option[string], len(paths))
	for i, p := range paths {
		options[i] = huh.NewOption(fmt.Sprintf("%s  %s", p, dirStatus(p)), p)
	}

	var path string
	err := huh.NewSelect[string]().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(options...).
		Value(&path).
		Run()
	return path, err
}

// confirmAction shows a confirmation prompt
func confirmAction(title, description string) (bool, error) {
	var confirmed bool

	err := huh.NewConfirm().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render(description)).
		Affirmative(theme.SuccessStyle.Render("Yes")).
		Negative(theme.ErrorStyle.Render("No")).
		Value(&confirmed).
		Run()

	return confirmed, err
}

func dirStatus(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return theme.SuccessStyle.Render("✓ Exists")
	}
	return theme.Faint.Render("Not found")
}
