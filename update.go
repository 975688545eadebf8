package main

import (
	"context"
	"fmt"
	"os"

	"jvscan/internal/theme"
	"jvscan/internal/updater"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for and install a newer jvscan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		if !a.settings.UpdateConfig.Enabled {
			fmt.Println(theme.WarningStyle.Render("Updates are disabled in configuration."))
			fmt.Println(theme.Faint.Render("To enable, edit " + a.store.Path() + " and set update_config.enabled to true"))
			return nil
		}

		upd, err := updater.NewUpdater(a.store, a.settings, Version)
		if err != nil {
			return fmt.Errorf("error initializing updater: %w", err)
		}

		fmt.Println(theme.InfoStyle.Render("Checking GitHub for a newer jvscan..."))

		ctx, cancel := context.WithTimeout(cmd.Context(), updater.UpdateTimeout)
		defer cancel()

		release, err := upd.CheckForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if release == nil {
			fmt.Println(theme.SuccessMessage(fmt.Sprintf("jvscan %s is the latest release", Version)))
			return nil
		}

		offer := updater.NewOffer(Version, release)
		action, err := upd.Ask(offer)
		if err != nil {
			fmt.Println(theme.WarningStyle.Render("Update cancelled."))
			return nil
		}

		switch action {
		case updater.ActionSkip:
			fmt.Println(theme.InfoMessage(fmt.Sprintf("Skipping %s; background checks will not mention it again", offer.Latest)))
			return nil
		case updater.ActionLater:
			fmt.Println(theme.InfoMessage("Update postponed"))
			return nil
		}

		fmt.Println(theme.InfoStyle.Render(fmt.Sprintf("Downloading jvscan %s...", offer.Latest)))
		if err := upd.PerformUpdate(ctx, release); err != nil {
			fmt.Println(theme.Faint.Render("Download manually from https://github.com/" + updater.GitHubRepo + "/releases"))
			return fmt.Errorf("update failed: %w", err)
		}

		updater.WriteInstalled(os.Stdout, offer.Latest, a.store.Path())
		return nil
	},
}
