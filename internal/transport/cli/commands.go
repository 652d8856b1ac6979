package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/value"
	"price_tracker/pkg/errcodes"
)

func newListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show tracked items and keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := rt.syncer.LoadAll(cmd.Context())
			if err != nil {
				return err
			}

			printCatalog(cmd.OutOrStdout(), snap)

			return nil
		},
	}
}

func newTrackCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "track <url>",
		Short:   "Track the price of one item",
		Example: "  trackctl track https://jp.mercari.com/item/m12345678901",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := rt.syncer.Track(cmd.Context(), strings.Join(args, " "))
			if err := settle(cmd, err); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Item tracked.")
			printCatalog(cmd.OutOrStdout(), rt.syncer.Snapshot())

			return nil
		},
	}
}

func newKeywordCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "keyword <text>",
		Short: "Save a keyword and store its current search results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ingestion, err := rt.syncer.TrackKeyword(cmd.Context(), strings.Join(args, " "))
			if err := settle(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Keyword %q saved, %d items stored.\n", ingestion.Keyword, ingestion.ItemsCount)

			return nil
		},
	}
}

func newSearchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Preview search results without saving them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			results, err := rt.syncer.SearchNow(cmd.Context(), text)
			if err != nil {
				return err
			}

			printSearch(cmd.OutOrStdout(), value.NormalizeKeyword(text), results)

			return nil
		},
	}
}

func newItemsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "items <keyword>",
		Short: "List the items stored under a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := value.NormalizeKeyword(strings.Join(args, " "))

			items, err := rt.syncer.KeywordItems(cmd.Context(), keyword)
			if err != nil {
				return err
			}

			printItems(cmd.OutOrStdout(), keyword, items)

			return nil
		},
	}
}

func newDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Stop tracking one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := settle(cmd, rt.syncer.DeleteProduct(cmd.Context(), id)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Item deleted.")

			return nil
		},
	}
}

func newDeleteKeywordCmd(rt *runtime) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-keyword <keyword>",
		Short: "Delete a keyword and every item stored under it",
		Long: `Delete a keyword monitor. The items stored under the keyword are deleted
with it. On a terminal the command asks for confirmation, elsewhere it
requires --yes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			plan, err := rt.syncer.PlanKeywordDeletion(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if !yes {
				if !rt.interactive() {
					return errNotConfirmed
				}

				if !confirm(cmd.OutOrStdout(), cmd.InOrStdin(), deletionQuestion(plan.Keyword, plan.AffectedItems, plan.AffectedKnown)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := settle(cmd, rt.syncer.DeleteKeyword(ctx, plan.Confirm())); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Keyword %q deleted.\n", plan.Keyword)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")

	return cmd
}

func newHistoryCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the price history of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return rt.history.Load(cmd.Context(), rt.history.Select(id), func(h entity.History) error {
				printHistory(cmd.OutOrStdout(), h)
				return nil
			})
		},
	}
}

// settle lets a mutation whose only failure was the list refresh pass with a
// warning.
func settle(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	if domain.HasCode(err, errcodes.FetchFailed) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: done, but the list could not be refreshed: %v\n", err)
		return nil
	}

	return err
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(errcodes.InvalidProductID, fmt.Sprintf("invalid item id %q", raw))
	}

	return id, nil
}
