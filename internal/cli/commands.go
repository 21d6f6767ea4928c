package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/display"
	"catalog-browser/internal/tui"
)

func (a *App) rowCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "row <endpoint>",
		Short: "Print one catalog row",
		Long: "Fetch a single list endpoint and print it the way the browser shows a row.\n\n" +
			"Known endpoints:\n  " + strings.Join(catalog.ListPaths(), "\n  "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := catalog.Parse(args[0])
			if err == nil && ep.Kind() != catalog.KindList {
				err = catalog.ErrInvalidEndpoint
			}
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}

			lang, err := a.activeLanguage(cmd.Context())
			if err != nil {
				return err
			}
			tr := a.bundle.For(lang)

			ctx, cancel := a.fetchContext(cmd.Context())
			defer cancel()
			items, err := a.source.Fetch(ctx, ep, lang)
			state := display.FromResult(items, err)

			fmt.Fprintln(cmd.OutOrStdout(), display.RenderRow(ep.String(), state, a.styles(), tr, "", limit))
			if state.Kind == display.Error {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum items to print (0 for all)")
	return cmd
}

func (a *App) overviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview <movie|tv> <id>",
		Short: "Print the overview of a movie or TV show",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: id %q is not a number", catalog.ErrInvalidEndpoint, args[1])
			}
			ep, err := catalog.Detail(args[0], id)
			if err != nil {
				return err
			}

			lang, err := a.activeLanguage(cmd.Context())
			if err != nil {
				return err
			}
			tr := a.bundle.For(lang)

			ctx, cancel := a.fetchContext(cmd.Context())
			defer cancel()
			item, err := a.source.Detail(ctx, ep, lang)
			state := display.FromDetail(item, err)

			out := cmd.OutOrStdout()
			if item.Title != "" {
				fmt.Fprintln(out, a.styles().Item.Render(item.Title))
			}
			fmt.Fprintln(out, display.RenderOverview(state, a.styles(), tr, ""))
			if state.Kind == display.Error {
				return err
			}
			return nil
		},
	}
}

func (a *App) languagesCmd() *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List display languages or change the stored one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if set != "" {
				lang, err := a.detector.Change(cmd.Context(), tui.ClientKey, set)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "language set to %s (%s)\n", lang, a.bundle.Lookup(lang, "language.name"))
				return nil
			}

			active, err := a.activeLanguage(cmd.Context())
			if err != nil {
				return err
			}
			for _, code := range a.bundle.Supported() {
				marker := " "
				if code == active {
					marker = "*"
				}
				suffix := ""
				if code == a.bundle.Fallback() {
					suffix = " (default)"
				}
				fmt.Fprintf(out, "%s %s  %s%s\n", marker, code, a.bundle.Lookup(code, "language.name"), suffix)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Store a new display language")
	return cmd
}
