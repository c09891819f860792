package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/checkout"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/price"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var name, email, address string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the order and open a payment session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if total, err := price.CartTotal(a.cart.Items()); err == nil {
				fmt.Fprintf(out, "Total do pedido: %s\n", price.FormatBRL(total))
			}

			res, err := a.checkout.Submit(cmd.Context(), checkout.Details{
				FullName: name,
				Email:    email,
				Address:  address,
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), checkout.UserMessage(err))
				return err
			}
			fmt.Fprintf(out, "Pedido #%d criado.\n", res.OrderID)
			fmt.Fprintf(out, "Abra o link para concluir o pagamento:\n%s\n", res.RedirectURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&address, "address", "", "delivery address")
	return cmd
}
