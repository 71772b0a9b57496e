package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPainelCmd(d deps, s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "painel [rota]",
		Short: "Abrir o painel no navegador",
		Long:  "Abre o painel web, opcionalmente em uma rota como /clientes ou /recorrencias/<id>",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := "/"
			if len(args) == 1 {
				route = normalizeRoute(args[0])
			}
			url := panelLink(s.baseURL, route)
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return d.openURL(url)
		},
	}
}

// normalizeRoute turns "clientes", "#/clientes" or "/clientes" into "/clientes".
func normalizeRoute(route string) string {
	route = strings.TrimPrefix(strings.TrimSpace(route), "#")
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}
