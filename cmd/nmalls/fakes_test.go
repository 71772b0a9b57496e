package main

import (
	"context"
	"errors"

	"nmalls-recorrencia/apiclient"
	"nmalls-recorrencia/models"
)

var errNotImplemented = errors.New("not implemented")

// FakePanelAPI lets each test stub only the calls it needs.
type FakePanelAPI struct {
	LoginFunc                     func(ctx context.Context, email, senha string) (string, error)
	GetDashboardFunc              func(ctx context.Context) (*apiclient.Dashboard, error)
	ListClientesFunc              func(ctx context.Context) ([]models.Cliente, error)
	GetClienteFunc                func(ctx context.Context, id string) (*models.Cliente, error)
	GetClienteByCPFFunc           func(ctx context.Context, cpf string) (*models.Cliente, error)
	ListRecorrenciasFunc          func(ctx context.Context, filtro apiclient.RecorrenciaFiltro) ([]models.Recorrencia, error)
	ListRecorrenciasByClienteFunc func(ctx context.Context, clienteID string) ([]models.Recorrencia, error)
	GetRecorrenciaFunc            func(ctx context.Context, id string) (*models.Recorrencia, error)
	GetHistoricoFunc              func(ctx context.Context, id string) ([]models.HistoricoCompra, error)
	ListProdutosFunc              func(ctx context.Context) ([]models.Produto, error)
	SearchProdutosFunc            func(ctx context.Context, termo string) ([]models.Produto, error)
}

var _ PanelAPI = (*FakePanelAPI)(nil)
var _ PanelAPI = (*apiclient.Client)(nil)

func (f *FakePanelAPI) Login(ctx context.Context, email, senha string) (string, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, senha)
	}
	return "", errNotImplemented
}

func (f *FakePanelAPI) GetDashboard(ctx context.Context) (*apiclient.Dashboard, error) {
	if f.GetDashboardFunc != nil {
		return f.GetDashboardFunc(ctx)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) ListClientes(ctx context.Context) ([]models.Cliente, error) {
	if f.ListClientesFunc != nil {
		return f.ListClientesFunc(ctx)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) GetCliente(ctx context.Context, id string) (*models.Cliente, error) {
	if f.GetClienteFunc != nil {
		return f.GetClienteFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) GetClienteByCPF(ctx context.Context, cpf string) (*models.Cliente, error) {
	if f.GetClienteByCPFFunc != nil {
		return f.GetClienteByCPFFunc(ctx, cpf)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) ListRecorrencias(ctx context.Context, filtro apiclient.RecorrenciaFiltro) ([]models.Recorrencia, error) {
	if f.ListRecorrenciasFunc != nil {
		return f.ListRecorrenciasFunc(ctx, filtro)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) ListRecorrenciasByCliente(ctx context.Context, clienteID string) ([]models.Recorrencia, error) {
	if f.ListRecorrenciasByClienteFunc != nil {
		return f.ListRecorrenciasByClienteFunc(ctx, clienteID)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) GetRecorrencia(ctx context.Context, id string) (*models.Recorrencia, error) {
	if f.GetRecorrenciaFunc != nil {
		return f.GetRecorrenciaFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) GetHistorico(ctx context.Context, id string) ([]models.HistoricoCompra, error) {
	if f.GetHistoricoFunc != nil {
		return f.GetHistoricoFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) ListProdutos(ctx context.Context) ([]models.Produto, error) {
	if f.ListProdutosFunc != nil {
		return f.ListProdutosFunc(ctx)
	}
	return nil, errNotImplemented
}

func (f *FakePanelAPI) SearchProdutos(ctx context.Context, termo string) ([]models.Produto, error) {
	if f.SearchProdutosFunc != nil {
		return f.SearchProdutosFunc(ctx, termo)
	}
	return nil, errNotImplemented
}

// memoryTokens is an in-memory TokenStore.
type memoryTokens map[string]string

func (m memoryTokens) Get(server string) (string, error) {
	return m[server], nil
}

func (m memoryTokens) Set(server, token string) error {
	m[server] = token
	return nil
}

func (m memoryTokens) Delete(server string) error {
	delete(m, server)
	return nil
}
