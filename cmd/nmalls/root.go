package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"nmalls-recorrencia/apiclient"
	"nmalls-recorrencia/logger"
	"nmalls-recorrencia/models"
)

const defaultAPIURL = "http://localhost:3000"

// PanelAPI is the subset of the API client the commands use.
type PanelAPI interface {
	Login(ctx context.Context, email, senha string) (string, error)
	GetDashboard(ctx context.Context) (*apiclient.Dashboard, error)
	ListClientes(ctx context.Context) ([]models.Cliente, error)
	GetCliente(ctx context.Context, id string) (*models.Cliente, error)
	GetClienteByCPF(ctx context.Context, cpf string) (*models.Cliente, error)
	ListRecorrencias(ctx context.Context, filtro apiclient.RecorrenciaFiltro) ([]models.Recorrencia, error)
	ListRecorrenciasByCliente(ctx context.Context, clienteID string) ([]models.Recorrencia, error)
	GetRecorrencia(ctx context.Context, id string) (*models.Recorrencia, error)
	GetHistorico(ctx context.Context, id string) ([]models.HistoricoCompra, error)
	ListProdutos(ctx context.Context) ([]models.Produto, error)
	SearchProdutos(ctx context.Context, termo string) ([]models.Produto, error)
}

// deps are the outside-world hooks, swapped out in tests.
type deps struct {
	newAPI  func(baseURL, token string) PanelAPI
	tokens  TokenStore
	openURL func(url string) error
}

func defaultDeps() deps {
	return deps{
		newAPI: func(baseURL, token string) PanelAPI {
			return apiclient.New(baseURL, apiclient.WithToken(token))
		},
		tokens:  keyringStore{},
		openURL: browser.OpenURL,
	}
}

func getBaseURL() string {
	if u := os.Getenv("NMALLS_API"); strings.TrimSpace(u) != "" {
		return strings.TrimRight(u, "/")
	}
	return defaultAPIURL
}

// session is resolved once per invocation from the --api flag and the
// stored token.
type session struct {
	baseURL string
	token   string
	api     PanelAPI
}

func newRootCmd(d deps) *cobra.Command {
	var (
		apiURL  string
		verbose bool
	)
	s := &session{}

	root := &cobra.Command{
		Use:          "nmalls",
		Short:        "Painel de recorrências no terminal",
		Long:         "Consulta clientes e recorrências do painel NMalls a partir do terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.InitTo(os.Stderr, "nmalls", true)
				logger.SetLevel("debug")
			} else {
				logger.SetLevel("disabled")
			}

			s.baseURL = strings.TrimRight(apiURL, "/")
			token, err := d.tokens.Get(s.baseURL)
			if err != nil {
				return err
			}
			s.token = token
			s.api = d.newAPI(s.baseURL, token)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api", getBaseURL(), "Endereço do painel (env NMALLS_API)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mostrar logs de depuração")

	root.AddCommand(newLoginCmd(d, s))
	root.AddCommand(newLogoutCmd(d, s))
	root.AddCommand(newConsultarCmd(s))
	root.AddCommand(newPainelCmd(d, s))
	root.AddCommand(newShellCmd(s))

	return root
}
