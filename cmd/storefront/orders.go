package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOrdersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orders [id]",
		Short: "Show your order history, or one order in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id, err := parseProductID(args[0])
				if err != nil {
					return fmt.Errorf("invalid order id %q", args[0])
				}
				return runOrderDetail(a, cmd, id)
			}
			return runOrderList(a, cmd)
		},
	}
}

func runOrderList(a *app, cmd *cobra.Command) error {
	orders, err := a.session.Orders(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(orders) == 0 {
		fmt.Fprintln(out, "Você ainda não tem pedidos.")
		return nil
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PEDIDO\tDATA\tSTATUS\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n", o.ID, o.CreatedAt, o.Status, displayPrice(o.TotalAmount))
	}
	return w.Flush()
}

func runOrderDetail(a *app, cmd *cobra.Command, id int64) error {
	o, err := a.session.Order(cmd.Context(), id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pedido #%d\n", o.ID)
	fmt.Fprintf(out, "Data: %s\n", o.CreatedAt)
	fmt.Fprintf(out, "Status: %s\n", o.Status)
	for _, item := range o.Items {
		fmt.Fprintf(out, "  %dx %s\t%s\n", item.Quantity, item.ProductName, displayPrice(item.Price))
	}
	fmt.Fprintf(out, "Total: %s\n", displayPrice(o.TotalAmount))
	return nil
}
