package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/price"
)

// displayPrice renders a server price in BRL, falling back to the raw string
// when it cannot be parsed so the listing never hides a product.
func displayPrice(raw string) string {
	d, err := price.Parse(raw)
	if err != nil {
		return raw
	}
	return price.FormatBRL(d)
}

func newProductsCmd(a *app) *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.client.Products(cmd.Context(), search, category)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum produto encontrado.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOME\tPREÇO\tCATEGORIA")
			for _, p := range products {
				cat := ""
				if p.Category != nil {
					cat = p.Category.Slug
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, displayPrice(p.Price), cat)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name or description")
	cmd.Flags().StringVar(&category, "category", "", "filter by category slug")
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.client.Categories(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOME\tSLUG")
			for _, c := range cats {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Slug)
			}
			return w.Flush()
		},
	}
}
