package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"wishlist-cli/internal/imageref"
	"wishlist-cli/internal/model"
	"wishlist-cli/internal/mutate"
	"wishlist-cli/internal/view"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Wishlist item commands",
	}

	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsStatusCmd(app))
	cmd.AddCommand(newItemsTotalCmd(app))

	return cmd
}

type draftFlags struct {
	title       string
	price       float64
	url         string
	image       string
	embedImage  bool
	description string
	date        string
	status      string
}

func (df *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&df.title, "title", "", "Item title")
	cmd.Flags().Float64Var(&df.price, "price", 0, "Price (non-negative)")
	cmd.Flags().StringVar(&df.url, "url", "", "Product link (optional)")
	cmd.Flags().StringVar(&df.image, "image", "", "Image: URL, file path, or data URI (optional)")
	cmd.Flags().BoolVar(&df.embedImage, "embed-image", false, "Embed a local image file as a data URI instead of a file:// reference")
	cmd.Flags().StringVar(&df.description, "description", "", "Markdown description (optional)")
	cmd.Flags().StringVar(&df.date, "date", "", "Desired purchase date YYYY-MM-DD (optional)")
	cmd.Flags().StringVar(&df.status, "status", "", "Status: planned|purchased|postponed")
}

// resolveImage converts a local path to a stored reference. Failures are
// swallowed: the image field is simply left as it was.
func resolveImage(input string, embed bool, fallback string) string {
	ref, err := imageref.Resolve(input, embed)
	if err != nil {
		return fallback
	}
	return ref
}

func newItemsAddCmd(app *App) *cobra.Command {
	var df draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a wishlist item",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			status := model.StatusPlanned
			if strings.TrimSpace(df.status) != "" {
				st, err := model.ParseStatus(df.status)
				if err != nil {
					return writeErr(cmd, err)
				}
				status = st
			}

			d := model.Draft{
				Title:       df.title,
				Price:       df.price,
				URL:         df.url,
				Image:       resolveImage(df.image, df.embedImage, ""),
				Description: df.description,
				DesiredDate: df.date,
				Status:      status,
			}
			it, err := mutate.Create(cmd.Context(), s, d)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	df.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var statuses []string
	var minPrice, maxPrice float64
	var dateFrom, dateTo string
	var sortField, sortOrder string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items (filtered and sorted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			f := model.Filter{DateFrom: dateFrom, DateTo: dateTo}
			for _, raw := range statuses {
				st, err := model.ParseStatus(raw)
				if err != nil {
					return writeErr(cmd, err)
				}
				f.Statuses = append(f.Statuses, st)
			}
			if cmd.Flags().Changed("min-price") {
				f.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				f.MaxPrice = &maxPrice
			}

			srt := model.DefaultSort()
			if strings.TrimSpace(sortField) != "" {
				fld, err := model.ParseSortField(sortField)
				if err != nil {
					return writeErr(cmd, err)
				}
				srt.Field = fld
			}
			if strings.TrimSpace(sortOrder) != "" {
				ord, err := model.ParseSortOrder(sortOrder)
				if err != nil {
					return writeErr(cmd, err)
				}
				srt.Order = ord
			}

			items, err := s.ListAll(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			visible := view.Derive(items, f, srt)
			return writeOut(cmd, app, map[string]any{
				"data": visible,
				"meta": map[string]any{
					"count":        len(visible),
					"plannedTotal": view.PlannedTotal(visible),
				},
			})
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Status filter, repeatable (default: all)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price, inclusive")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price, inclusive")
	cmd.Flags().StringVar(&dateFrom, "from", "", "Desired date lower bound YYYY-MM-DD (excludes dateless items)")
	cmd.Flags().StringVar(&dateTo, "to", "", "Desired date upper bound YYYY-MM-DD (excludes dateless items)")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort field: title|price|desiredDate|createdAt (default createdAt)")
	cmd.Flags().StringVar(&sortOrder, "order", "", "Sort order: asc|desc (default desc)")

	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	var df draftFlags

	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Edit an item (unset flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Pre-populate from the current record, then overlay changed flags.
			cur, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			d := model.Draft{
				Title:       cur.Title,
				Price:       cur.Price,
				URL:         cur.URL,
				Image:       cur.Image,
				Description: cur.Description,
				DesiredDate: cur.DesiredDate,
				Status:      cur.Status,
			}
			if cmd.Flags().Changed("title") {
				d.Title = df.title
			}
			if cmd.Flags().Changed("price") {
				d.Price = df.price
			}
			if cmd.Flags().Changed("url") {
				d.URL = df.url
			}
			if cmd.Flags().Changed("image") {
				d.Image = resolveImage(df.image, df.embedImage, cur.Image)
			}
			if cmd.Flags().Changed("description") {
				d.Description = df.description
			}
			if cmd.Flags().Changed("date") {
				d.DesiredDate = df.date
			}
			if cmd.Flags().Changed("status") {
				st, err := model.ParseStatus(df.status)
				if err != nil {
					return writeErr(cmd, err)
				}
				d.Status = st
			}

			it, err := mutate.Edit(cmd.Context(), s, args[0], d)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	df.register(cmd)

	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item (asks for confirmation unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			if !yes {
				// Prompt on stderr so stdout stays machine-readable JSON.
				fmt.Fprintf(cmd.ErrOrStderr(), "Delete %q (%s)? [y/N] ", it.Title, it.ID)
				sc := bufio.NewScanner(cmd.InOrStdin())
				if !sc.Scan() {
					return errors.New("aborted")
				}
				answer := strings.ToLower(strings.TrimSpace(sc.Text()))
				if answer != "y" && answer != "yes" {
					return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": false}})
				}
			}

			if err := mutate.Delete(cmd.Context(), s, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": true, "id": args[0]}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newItemsStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <item-id> <planned|purchased|postponed>",
		Short: "Change an item's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := model.ParseStatus(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := mutate.ChangeStatus(cmd.Context(), s, args[0], st)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	return cmd
}

func newItemsTotalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Total price of planned items",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := s.ListAll(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			visible := view.Derive(items, model.Filter{}, model.DefaultSort())
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"plannedTotal": view.PlannedTotal(visible)},
			})
		},
	}
	return cmd
}
