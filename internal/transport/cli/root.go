// Package cli is the terminal front end of the tracker.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"price_tracker/internal/config"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/infrastructure/trackerapi"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/logx"
)

// runtime is what every subcommand works with once flags are parsed.
type runtime struct {
	syncer      *catalog.Syncer
	history     *catalog.HistoryLoader
	interactive func() bool
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd builds the trackctl command tree.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, func() bool { return isTerminal(os.Stdin) })
}

func newRootCmd(version string, interactive func() bool) *cobra.Command {
	var (
		apiURL   string
		logLevel string
	)

	rt := &runtime{interactive: interactive}

	cmd := &cobra.Command{
		Use:           "trackctl",
		Short:         "Manage tracked Mercari items and keywords",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log := logx.NewConsoleLogger(cmd.ErrOrStderr(), logx.ParseLevel(logLevel), !isTerminal(os.Stderr))
			cmd.SetContext(contextx.WithLogger(cmd.Context(), log))

			api, err := config.LoadAPI()
			if err != nil {
				return err
			}

			if apiURL != "" {
				api.URL = apiURL
			}

			if err := api.Validate(); err != nil {
				return err
			}

			// Nothing scrapes a command line tool, the registry only feeds the
			// round tripper.
			httpClient, err := trackerapi.NewHTTPClient(api.LogFieldMaxLen, prometheus.NewRegistry())
			if err != nil {
				return fmt.Errorf("trackerapi.NewHTTPClient: %w", err)
			}

			client := trackerapi.NewClient(api.URL, httpClient)

			rt.syncer = catalog.NewSyncer(client)
			rt.history = catalog.NewHistoryLoader(client)

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "tracker API address, overrides TRACKER_API_URL")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newListCmd(rt),
		newTrackCmd(rt),
		newKeywordCmd(rt),
		newSearchCmd(rt),
		newItemsCmd(rt),
		newDeleteCmd(rt),
		newDeleteKeywordCmd(rt),
		newHistoryCmd(rt),
	)

	return cmd
}

var errNotConfirmed = errors.New("keyword deletion needs confirmation, pass --yes")
