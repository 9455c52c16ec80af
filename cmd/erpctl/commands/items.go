package commands

import (
	"erp/internal/client/api"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultListLimit = 100

func (a *app) newItemsCmd() *cobra.Command {
	var skip, limit int

	list := func(cmd *cobra.Command, args []string) error {
		items, err := a.svc.ListItems(a.ctx(cmd), skip, limit)
		if err != nil {
			return err
		}
		if len(items) == 0 && a.format() == FormatTable {
			a.printer().println("No items")

			return nil
		}

		return a.printer().print(itemList(items))
	}

	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Manage your inventory items",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your items",
		Args:    cobra.NoArgs,
		RunE:    list,
	}
	for _, c := range []*cobra.Command{cmd, listCmd} {
		c.Flags().IntVar(&skip, "skip", 0, "Number of items to skip")
		c.Flags().IntVar(&limit, "limit", defaultListLimit, "Maximum number of items")
	}

	cmd.AddCommand(
		listCmd,
		a.newItemAddCmd(),
		a.newItemShowCmd(),
		a.newItemUpdateCmd(),
		a.newItemDeleteCmd(),
	)

	return cmd
}

func (a *app) newItemAddCmd() *cobra.Command {
	var (
		input       api.ItemInput
		description string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"create"},
		Short:   "Add an item",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Name == "" {
				name, err := a.prompt.Input("Name", "")
				if err != nil {
					return err
				}
				input.Name = name
			}
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}

			item, err := a.svc.CreateItem(a.ctx(cmd), &input)
			if err != nil {
				return err
			}

			return a.printer().print(itemDetail(*item))
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "Item name (prompted when omitted)")
	cmd.Flags().StringVar(&description, "description", "", "Item description")
	cmd.Flags().IntVar(&input.Quantity, "quantity", 0, "Quantity on hand")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Unit price, must be greater than 0")

	return cmd
}

func (a *app) newItemShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   "Show one item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.svc.GetItem(a.ctx(cmd), args[0])
			if err != nil {
				return err
			}

			return a.printer().print(itemDetail(*item))
		},
	}
}

func (a *app) newItemUpdateCmd() *cobra.Command {
	var (
		name        string
		description string
		quantity    int
		price       float64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := &api.ItemPatch{}
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("quantity") {
				patch.Quantity = &quantity
			}
			if flags.Changed("price") {
				patch.Price = &price
			}
			if *patch == (api.ItemPatch{}) {
				return errors.New("nothing to update, use --name, --description, --quantity or --price")
			}

			item, err := a.svc.UpdateItem(a.ctx(cmd), args[0], patch)
			if err != nil {
				return err
			}

			return a.printer().print(itemDetail(*item))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "New quantity")
	cmd.Flags().Float64Var(&price, "price", 0, "New unit price")

	return cmd
}

func (a *app) newItemDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := a.prompt.Confirm("Delete item " + args[0])
				if err != nil {
					return err
				}
				if !ok {
					a.printer().println("Aborted")

					return nil
				}
			}

			if err := a.svc.DeleteItem(a.ctx(cmd), args[0]); err != nil {
				return err
			}
			a.printer().printf("Deleted item %s\n", args[0])

			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "yes", "y", false, "Skip confirmation")

	return cmd
}
