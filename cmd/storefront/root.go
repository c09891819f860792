package main

import (
	"github.com/spf13/cobra"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/api"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/checkout"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/config"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/session"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/storage"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/store"
)

// app bundles the shared state containers and flows behind the commands.
type app struct {
	cfg      config.Config
	client   *api.Client
	cart     *store.Cart
	auth     *store.Auth
	session  *session.Manager
	checkout *checkout.Orchestrator
}

func newApp() *app {
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Debug("storefront_starting", "api_base_url", cfg.APIBaseURL, "state_dir", cfg.StateDir)

	st := storage.NewFile(cfg.StateDir)
	cart := store.NewCart(st)
	auth := store.NewAuth(st)
	client := api.New(cfg)

	return &app{
		cfg:      cfg,
		client:   client,
		cart:     cart,
		auth:     auth,
		session:  session.New(client, auth),
		checkout: checkout.New(client, cart, auth),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Loja IA storefront: browse the catalog, manage the cart and check out",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newProductsCmd(a),
		newCategoriesCmd(a),
		newCartCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newCheckoutCmd(a),
		newOrdersCmd(a),
	)
	return root
}
