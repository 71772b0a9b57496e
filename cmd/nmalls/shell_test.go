package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nmalls-recorrencia/apiclient"
	"nmalls-recorrencia/models"
)

func shellAPI() *FakePanelAPI {
	joao := models.Cliente{ID: uuid.New(), Nome: "João Souza", CPF: "11144477735"}
	return &FakePanelAPI{
		GetDashboardFunc: func(ctx context.Context) (*apiclient.Dashboard, error) {
			return &apiclient.Dashboard{
				TotalClientes:      3,
				RecorrenciasAtivas: 2,
				ComprasHoje:        1,
				ComprasAtrasadas:   4,
				ProximasCompras:    []models.Recorrencia{recorrenciaDeMaria()},
			}, nil
		},
		ListClientesFunc: func(ctx context.Context) ([]models.Cliente, error) {
			return []models.Cliente{joao, *maria()}, nil
		},
		GetClienteFunc: func(ctx context.Context, id string) (*models.Cliente, error) {
			if id != mariaID.String() {
				return nil, apiclient.ErrNotFound
			}
			return maria(), nil
		},
		ListRecorrenciasByClienteFunc: func(ctx context.Context, clienteID string) ([]models.Recorrencia, error) {
			return []models.Recorrencia{recorrenciaDeMaria()}, nil
		},
		ListProdutosFunc: func(ctx context.Context) ([]models.Produto, error) {
			return []models.Produto{{Codigo: "P001", Nome: "Ração Premium", Preco: decimal.RequireFromString("89.9")}}, nil
		},
	}
}

func newTestShell(api *FakePanelAPI) (*Shell, *bytes.Buffer) {
	var out bytes.Buffer
	s := NewShell(context.Background(), api, testBaseURL, &out)
	s.now = fixedNow
	return s, &out
}

func TestShellStartsOnDashboard(t *testing.T) {
	s, out := newTestShell(shellAPI())

	s.Start()

	assert.Equal(t, "/", s.Fragment())
	got := out.String()
	assert.Contains(t, got, "Carregando...")
	assert.Contains(t, got, "Clientes: 3  Recorrências ativas: 2")
	assert.Contains(t, got, "Compras hoje: 1  Compras atrasadas: 4")
	assert.Contains(t, got, "Maria Silva")
	assert.Contains(t, got, "15/03/2025 (Amanhã)")
	assert.Contains(t, got, "#/recorrencias/"+recID.String())
}

func TestShellDashboardWithoutProximas(t *testing.T) {
	api := shellAPI()
	api.GetDashboardFunc = func(ctx context.Context) (*apiclient.Dashboard, error) {
		return &apiclient.Dashboard{}, nil
	}
	s, out := newTestShell(api)

	s.Start()

	assert.Contains(t, out.String(), "Nenhuma compra recorrente programada.")
}

func TestShellClientesSearch(t *testing.T) {
	s, out := newTestShell(shellAPI())
	s.Start()
	out.Reset()

	s.Go("/clientes?busca=MARIA")

	assert.Equal(t, "/clientes?busca=MARIA", s.Fragment())
	assert.Contains(t, out.String(), "Maria Silva")
	assert.Contains(t, out.String(), "529.982.247-25")
	assert.NotContains(t, out.String(), "João Souza")

	out.Reset()
	s.Go("clientes?busca=111.444")
	assert.Contains(t, out.String(), "João Souza")
	assert.NotContains(t, out.String(), "Maria Silva")

	out.Reset()
	s.Go("/clientes?busca=ninguem")
	assert.Contains(t, out.String(), `Nenhum cliente encontrado para "ninguem".`)
}

func TestShellClienteTabs(t *testing.T) {
	s, out := newTestShell(shellAPI())
	s.Start()
	out.Reset()

	s.Go("#/clientes/" + mariaID.String())
	assert.Contains(t, out.String(), "maria@example.com")
	assert.Contains(t, out.String(), "?tab=recorrencias")

	out.Reset()
	s.Go("/clientes/" + mariaID.String() + "?tab=recorrencias")
	assert.Contains(t, out.String(), "30 dias")
	assert.Contains(t, out.String(), "R$ 150,00")
}

func TestShellRecorrenciasFilters(t *testing.T) {
	api := shellAPI()
	var got apiclient.RecorrenciaFiltro
	api.ListRecorrenciasFunc = func(ctx context.Context, filtro apiclient.RecorrenciaFiltro) ([]models.Recorrencia, error) {
		got = filtro
		return nil, nil
	}
	s, out := newTestShell(api)
	s.Start()

	s.Go("/recorrencias?status=pausada&cliente=" + mariaID.String())

	assert.Equal(t, apiclient.RecorrenciaFiltro{ClienteID: mariaID.String(), Status: "pausada"}, got)
	assert.Contains(t, out.String(), "Nenhuma recorrência encontrada.")
}

func TestShellRecorrenciaDetail(t *testing.T) {
	api := shellAPI()
	api.GetRecorrenciaFunc = func(ctx context.Context, id string) (*models.Recorrencia, error) {
		r := recorrenciaDeMaria()
		r.Produtos = []models.RecorrenciaProduto{
			models.NovaLinha(uuid.New(), 2, decimal.RequireFromString("75")),
		}
		r.Produtos[0].Produto = &models.Produto{Codigo: "P002", Nome: "Areia"}
		return &r, nil
	}
	api.GetHistoricoFunc = func(ctx context.Context, id string) ([]models.HistoricoCompra, error) {
		return []models.HistoricoCompra{{
			Data:        models.NewDate(2025, time.February, 13),
			Valor:       decimal.RequireFromString("150"),
			Status:      models.CompraRealizada,
			Observacoes: "Primeira compra registrada",
		}}, nil
	}
	s, out := newTestShell(api)
	s.Start()
	out.Reset()

	s.Go("/recorrencias/" + recID.String())

	got := out.String()
	assert.Contains(t, got, "13/02/2025")
	assert.Contains(t, got, "P002 - Areia")
	assert.Contains(t, got, "Primeira compra registrada")
	assert.Contains(t, got, "realizada")
}

func TestShellViewErrorShowsErrorView(t *testing.T) {
	s, out := newTestShell(shellAPI())
	s.Start()
	out.Reset()

	s.Go("/clientes/" + uuid.NewString())

	assert.Contains(t, out.String(), shellErrorView)
}

func TestShellUnknownRouteFallsBackToDashboard(t *testing.T) {
	s, out := newTestShell(shellAPI())
	s.Start()
	out.Reset()

	s.Go("/desconhecida?x=1")

	assert.Equal(t, "/", s.Fragment())
	assert.Contains(t, out.String(), "Clientes: 3")
}

func TestShellReloadsCurrentRoute(t *testing.T) {
	api := shellAPI()
	calls := 0
	api.ListProdutosFunc = func(ctx context.Context) ([]models.Produto, error) {
		calls++
		return nil, nil
	}
	s, _ := newTestShell(api)
	s.Start()

	s.Go("/produtos")
	s.Go("/produtos")

	assert.Equal(t, 2, calls)
}

func TestShellProdutosSearch(t *testing.T) {
	api := shellAPI()
	api.SearchProdutosFunc = func(ctx context.Context, termo string) ([]models.Produto, error) {
		assert.Equal(t, "ração", termo)
		return nil, errors.New("offline")
	}
	s, out := newTestShell(api)
	s.Start()
	out.Reset()

	s.Go("/produtos?busca=ra%C3%A7%C3%A3o")

	assert.Contains(t, out.String(), shellErrorView)
}

func TestShellRunLoop(t *testing.T) {
	s, out := newTestShell(shellAPI())

	err := s.Run(strings.NewReader("/produtos\n\najuda\nsair\n/clientes\n"))

	require.NoError(t, err)
	got := out.String()
	assert.Contains(t, got, "Ração Premium")
	assert.Contains(t, got, "R$ 89,90")
	assert.Contains(t, got, "Rotas")
	assert.Contains(t, got, "#/ajuda> ")
	assert.NotContains(t, got, "João Souza")
}

func TestShellRunStopsAtEOF(t *testing.T) {
	s, out := newTestShell(shellAPI())

	require.NoError(t, s.Run(strings.NewReader("/produtos")))

	assert.Contains(t, out.String(), "P001")
}
