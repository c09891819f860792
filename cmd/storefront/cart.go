package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/price"
)

func parseProductID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(
		newCartAddCmd(a),
		newCartRemoveCmd(a),
		newCartShowCmd(a),
		newCartClearCmd(a),
		newCartToggleCmd(a),
	)
	return cmd
}

func newCartAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			products, err := a.client.Products(cmd.Context(), "", "")
			if err != nil {
				return err
			}
			for _, p := range products {
				if p.ID == id {
					a.cart.AddItem(p.ToCartProduct())
					fmt.Fprintf(cmd.OutOrStdout(), "Adicionado ao carrinho: %s\n", p.Name)
					return nil
				}
			}
			return fmt.Errorf("product %d not found", id)
		},
	}
}

func newCartRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove one unit of a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a.cart.RemoveItem(id)
			fmt.Fprintln(cmd.OutOrStdout(), "Carrinho atualizado.")
			return nil
		},
	}
}

func newCartShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart contents and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			items := a.cart.Items()
			if len(items) == 0 {
				fmt.Fprintln(out, "Seu carrinho está vazio.")
				return nil
			}
			for _, item := range items {
				sub, err := price.ItemSubtotal(item)
				if err != nil {
					fmt.Fprintf(out, "%dx %s\t%s\t(preço inválido)\n", item.Quantity, item.Product.Name, item.Product.Price)
					continue
				}
				fmt.Fprintf(out, "%dx %s\t%s\t%s\n", item.Quantity, item.Product.Name, displayPrice(item.Product.Price), price.FormatBRL(sub))
			}
			total, err := price.CartTotal(items)
			if errors.Is(err, price.ErrUnparseable) {
				fmt.Fprintln(out, "Total indisponível: há um preço inválido no carrinho.")
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Total: %s\n", price.FormatBRL(total))
			return nil
		},
	}
}

func newCartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove everything from the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cart.ClearCart()
			fmt.Fprintln(cmd.OutOrStdout(), "Carrinho esvaziado.")
			return nil
		},
	}
}

func newCartToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Open or close the cart panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cart.ToggleCart()
			if a.cart.IsOpen() {
				fmt.Fprintln(cmd.OutOrStdout(), "Carrinho aberto.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Carrinho fechado.")
			}
			return nil
		},
	}
}
