package apiclient

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"nmalls-recorrencia/models"
)

type ClienteInput struct {
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	Telefone    string `json:"telefone,omitempty"`
	Email       string `json:"email,omitempty"`
	Observacoes string `json:"observacoes,omitempty"`
}

type ProdutoInput struct {
	Codigo    string          `json:"codigo"`
	Nome      string          `json:"nome"`
	Descricao string          `json:"descricao,omitempty"`
	Preco     decimal.Decimal `json:"preco"`
}

type LinhaInput struct {
	ProdutoID     string           `json:"produto_id"`
	Quantidade    int              `json:"quantidade"`
	PrecoUnitario *decimal.Decimal `json:"preco_unitario,omitempty"`
}

type RecorrenciaInput struct {
	ClienteID     string       `json:"cliente_id"`
	IntervaloDias int          `json:"intervalo_dias"`
	UltimaCompra  models.Date  `json:"ultima_compra"`
	ProximaCompra *models.Date `json:"proxima_compra,omitempty"`
	Status        string       `json:"status,omitempty"`
	Observacoes   string       `json:"observacoes,omitempty"`
	Produtos      []LinhaInput `json:"produtos,omitempty"`
}

type CompraInput struct {
	DataCompra  models.Date      `json:"data_compra"`
	Valor       *decimal.Decimal `json:"valor,omitempty"`
	Observacoes string           `json:"observacoes,omitempty"`
}

// RecorrenciaFiltro narrows ListRecorrencias; empty fields are ignored.
type RecorrenciaFiltro struct {
	ClienteID string
	Status    string
}

type RegistroCompra struct {
	Recorrencia models.Recorrencia     `json:"recorrencia"`
	Compra      models.HistoricoCompra `json:"compra"`
}

type Usuario struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Verificacao struct {
	Valido  bool    `json:"valido"`
	Usuario Usuario `json:"usuario"`
}

type Dashboard struct {
	TotalClientes      int64                `json:"total_clientes"`
	RecorrenciasAtivas int64                `json:"recorrencias_ativas"`
	ComprasHoje        int64                `json:"compras_hoje"`
	ComprasAtrasadas   int64                `json:"compras_atrasadas"`
	ProximasCompras    []models.Recorrencia `json:"proximas_compras"`
}

// Auth

// Login authenticates and keeps the returned token on the client.
func (c *Client) Login(ctx context.Context, email, senha string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.Post(ctx, "/auth/login", map[string]string{"email": email, "senha": senha}, &resp)
	if err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

func (c *Client) Verificar(ctx context.Context) (*Verificacao, error) {
	var v Verificacao
	if err := c.Get(ctx, "/auth/verificar", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Clientes

func (c *Client) ListClientes(ctx context.Context) ([]models.Cliente, error) {
	var out []models.Cliente
	err := c.Get(ctx, "/clientes", &out)
	return out, err
}

func (c *Client) GetCliente(ctx context.Context, id string) (*models.Cliente, error) {
	var out models.Cliente
	if err := c.Get(ctx, "/clientes/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetClienteByCPF(ctx context.Context, cpf string) (*models.Cliente, error) {
	var out models.Cliente
	if err := c.Get(ctx, "/clientes/cpf/"+url.PathEscape(cpf), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCliente(ctx context.Context, in ClienteInput) (*models.Cliente, error) {
	var out models.Cliente
	if err := c.Post(ctx, "/clientes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCliente(ctx context.Context, id string, in ClienteInput) (*models.Cliente, error) {
	var out models.Cliente
	if err := c.Put(ctx, "/clientes/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCliente(ctx context.Context, id string) error {
	return c.Delete(ctx, "/clientes/"+url.PathEscape(id), nil)
}

// Produtos

func (c *Client) ListProdutos(ctx context.Context) ([]models.Produto, error) {
	var out []models.Produto
	err := c.Get(ctx, "/produtos", &out)
	return out, err
}

func (c *Client) GetProduto(ctx context.Context, id string) (*models.Produto, error) {
	var out models.Produto
	if err := c.Get(ctx, "/produtos/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProdutoByCodigo(ctx context.Context, codigo string) (*models.Produto, error) {
	var out models.Produto
	if err := c.Get(ctx, "/produtos/codigo/"+url.PathEscape(codigo), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchProdutos(ctx context.Context, termo string) ([]models.Produto, error) {
	var out []models.Produto
	err := c.Get(ctx, "/produtos/busca/"+url.PathEscape(termo), &out)
	return out, err
}

func (c *Client) CreateProduto(ctx context.Context, in ProdutoInput) (*models.Produto, error) {
	var out models.Produto
	if err := c.Post(ctx, "/produtos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduto(ctx context.Context, id string, in ProdutoInput) (*models.Produto, error) {
	var out models.Produto
	if err := c.Put(ctx, "/produtos/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduto(ctx context.Context, id string) error {
	return c.Delete(ctx, "/produtos/"+url.PathEscape(id), nil)
}

// Recorrencias

func (c *Client) ListRecorrencias(ctx context.Context, filtro RecorrenciaFiltro) ([]models.Recorrencia, error) {
	q := url.Values{}
	if filtro.ClienteID != "" {
		q.Set("cliente", filtro.ClienteID)
	}
	if filtro.Status != "" {
		q.Set("status", filtro.Status)
	}
	endpoint := "/recorrencias"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var out []models.Recorrencia
	err := c.Get(ctx, endpoint, &out)
	return out, err
}

func (c *Client) GetRecorrencia(ctx context.Context, id string) (*models.Recorrencia, error) {
	var out models.Recorrencia
	if err := c.Get(ctx, "/recorrencias/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRecorrenciasByCliente(ctx context.Context, clienteID string) ([]models.Recorrencia, error) {
	var out []models.Recorrencia
	err := c.Get(ctx, "/recorrencias/cliente/"+url.PathEscape(clienteID), &out)
	return out, err
}

func (c *Client) CreateRecorrencia(ctx context.Context, in RecorrenciaInput) (*models.Recorrencia, error) {
	var out models.Recorrencia
	if err := c.Post(ctx, "/recorrencias", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRecorrencia(ctx context.Context, id string, in RecorrenciaInput) (*models.Recorrencia, error) {
	var out models.Recorrencia
	if err := c.Put(ctx, "/recorrencias/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegistrarCompra(ctx context.Context, id string, in CompraInput) (*RegistroCompra, error) {
	var out RegistroCompra
	if err := c.Post(ctx, "/recorrencias/"+url.PathEscape(id)+"/registrar-compra", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRecorrencia(ctx context.Context, id string) error {
	return c.Delete(ctx, "/recorrencias/"+url.PathEscape(id), nil)
}

func (c *Client) GetHistorico(ctx context.Context, id string) ([]models.HistoricoCompra, error) {
	var out []models.HistoricoCompra
	err := c.Get(ctx, "/recorrencias/"+url.PathEscape(id)+"/historico", &out)
	return out, err
}

// Dashboard

func (c *Client) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.Get(ctx, "/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
