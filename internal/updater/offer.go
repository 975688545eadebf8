package updater

import (
	"fmt"
	"io"
	"strings"

	"jvscan/internal/logging"
	"jvscan/internal/theme"

	"github.com/charmbracelet/huh"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Action is the user's answer to an update offer
type Action string

const (
	ActionInstall Action = "install"
	ActionSkip    Action = "skip"
	ActionLater   Action = "later"
)

// notesLimit bounds the release notes shown in the prompt
const notesLimit = 400

// Offer is a newer release as presented to the user
type Offer struct {
	Current string
	Latest  string
	Size    int // bytes
	Notes   string
}

// NewOffer describes release against the running version
func NewOffer(current string, release *selfupdate.Release) Offer {
	return Offer{
		Current: cleanVersion(current),
		Latest:  release.Version(),
		Size:    release.AssetByteSize,
		Notes:   release.ReleaseNotes,
	}
}

// Title is the one-line headline of the offer
func (o Offer) Title() string {
	return fmt.Sprintf("jvscan %s → %s", o.Current, o.Latest)
}

// Details is the download size followed by the shortened release notes
func (o Offer) Details() string {
	size := "unknown"
	if o.Size > 0 {
		size = humanize.Bytes(uint64(o.Size))
	}
	return fmt.Sprintf("Download size: %s\n\n%s", size, shortenNotes(o.Notes, notesLimit))
}

// Ask shows the offer. Choosing skip is remembered in the settings.
func (u *Updater) Ask(o Offer) (Action, error) {
	action := ActionLater
	err := huh.NewSelect[Action]().
		Title(theme.Subtitle.Render("Update available: " + o.Title())).
		Description(theme.Faint.Render(o.Details())).
		Options(
			huh.NewOption(theme.SuccessStyle.Render("Install now"), ActionInstall),
			huh.NewOption(theme.InfoStyle.Render("Skip "+o.Latest), ActionSkip),
			huh.NewOption(theme.WarningStyle.Render("Remind me later"), ActionLater),
		).
		Value(&action).
		Run()
	if err != nil {
		return ActionLater, err
	}

	u.record(action, o.Latest)
	return action, nil
}

// record persists a skip. The answer stands even if saving fails.
func (u *Updater) record(action Action, version string) {
	if action != ActionSkip {
		return
	}
	if err := u.SkipVersion(version); err != nil {
		logging.Warnf("could not remember skipped version %s: %v", version, err)
	}
}

// WriteNotice prints the hint shown after a scan when a newer release exists.
// cached is the size of the runtime cache, which the update leaves alone.
func WriteNotice(w io.Writer, o Offer, cached int) {
	fmt.Fprintf(w, "\n%s %s %s\n",
		theme.InfoStyle.Render("ℹ"),
		o.Title(),
		theme.Faint.Render("(run 'jvscan update')"))
	if cached > 0 {
		fmt.Fprintln(w, theme.Faint.Render(fmt.Sprintf("  %s cached; the list is kept across the update.",
			english.Plural(cached, "runtime", ""))))
	}
	fmt.Fprintln(w)
}

// WriteInstalled prints the result of a successful update
func WriteInstalled(w io.Writer, version, settingsPath string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.SuccessBox.Render(theme.SuccessStyle.Render("✓ jvscan "+version+" installed")))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Settings:"), theme.PathStyle.Render(settingsPath))
	fmt.Fprintln(w, theme.Faint.Render("Default runtime, search paths and cached runtimes carry over."))
	fmt.Fprintln(w)
}

// shortenNotes keeps release notes under limit bytes, ending on a line or
// word boundary when one falls in the second half.
func shortenNotes(notes string, limit int) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "No release notes; see the GitHub release page."
	}
	if len(notes) <= limit {
		return notes
	}

	cut := strings.ToValidUTF8(notes[:limit], "")
	if i := strings.LastIndexByte(cut, '\n'); i > limit/2 {
		cut = cut[:i]
	} else if i := strings.LastIndexByte(cut, ' '); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " \n") + "…"
}
