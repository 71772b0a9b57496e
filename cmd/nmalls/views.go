package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"nmalls-recorrencia/apiclient"
	"nmalls-recorrencia/hashrouter"
	"nmalls-recorrencia/models"
	"nmalls-recorrencia/utils"
)

var shellTemplates = map[string]string{
	"dashboard": `Dashboard
Clientes: {{ total_clientes }}  Recorrências ativas: {{ recorrencias_ativas }}
Compras hoje: {{ compras_hoje }}  Compras atrasadas: {{ compras_atrasadas }}

Próximas compras
{{ proximas }}`,
	"ajuda": `Rotas
  /                          dashboard
  /clientes?busca=<termo>    clientes
  /clientes/<id>?tab=recorrencias
  /recorrencias?status=<ativa|pausada|cancelada>&cliente=<id>
  /recorrencias/<id>         detalhes e histórico
  /produtos?busca=<termo>    produtos

Comandos
  ajuda    esta ajuda
  sair     encerra o console`,
}

func (s *Shell) registerRoutes() {
	s.router.AddRoute("/", s.dashboardView)
	s.router.AddRoute("/clientes", s.clientesView)
	s.router.AddRoute("/clientes/:id", s.clienteView)
	s.router.AddRoute("/recorrencias", s.recorrenciasView)
	s.router.AddRoute("/recorrencias/:id", s.recorrenciaView)
	s.router.AddRoute("/produtos", s.produtosView)
	s.router.AddRoute("/ajuda", func(hashrouter.Params) error {
		s.router.RenderTemplate("ajuda", nil)
		return nil
	})
	s.router.SetDefaultRoute("/")
}

func (s *Shell) dashboardView(hashrouter.Params) error {
	d, err := s.api.GetDashboard(s.ctx)
	if err != nil {
		return err
	}

	proximas := "Nenhuma compra recorrente programada."
	if len(d.ProximasCompras) > 0 {
		data := pterm.TableData{{"Cliente", "Telefone", "Próxima compra", "Valor", "Rota"}}
		for _, r := range d.ProximasCompras {
			nome, telefone := "-", "-"
			if r.Cliente != nil {
				nome = r.Cliente.Nome
				telefone = utils.OrDash(utils.FormatPhone(r.Cliente.Telefone))
			}
			data = append(data, []string{
				nome,
				telefone,
				proximaCompraLabel(s.now(), r),
				utils.FormatCurrency(r.ValorTotal),
				"#/recorrencias/" + r.ID.String(),
			})
		}
		if proximas, err = renderTable(data); err != nil {
			return err
		}
	}

	s.router.RenderTemplate("dashboard", map[string]any{
		"total_clientes":      d.TotalClientes,
		"recorrencias_ativas": d.RecorrenciasAtivas,
		"compras_hoje":        d.ComprasHoje,
		"compras_atrasadas":   d.ComprasAtrasadas,
		"proximas":            proximas,
	})
	return nil
}

func (s *Shell) clientesView(params hashrouter.Params) error {
	clientes, err := s.api.ListClientes(s.ctx)
	if err != nil {
		return err
	}

	busca := strings.ToLower(strings.TrimSpace(params["busca"]))
	data := pterm.TableData{{"Nome", "CPF", "Telefone", "Rota"}}
	for _, c := range clientes {
		if busca != "" && !clienteMatches(c, busca) {
			continue
		}
		data = append(data, []string{
			c.Nome,
			utils.FormatCPF(c.CPF),
			utils.OrDash(utils.FormatPhone(c.Telefone)),
			"#/clientes/" + c.ID.String(),
		})
	}

	if len(data) == 1 {
		if busca != "" {
			s.router.RenderContent("Nenhum cliente encontrado para \"" + busca + "\".")
		} else {
			s.router.RenderContent("Nenhum cliente cadastrado.")
		}
		return nil
	}
	table, err := renderTable(data)
	if err != nil {
		return err
	}
	s.router.RenderContent("Clientes\n" + table)
	return nil
}

// clienteMatches compares busca with the name and both CPF spellings.
func clienteMatches(c models.Cliente, busca string) bool {
	return strings.Contains(strings.ToLower(c.Nome), busca) ||
		strings.Contains(c.CPF, busca) ||
		strings.Contains(utils.FormatCPF(c.CPF), busca)
}

func (s *Shell) clienteView(params hashrouter.Params) error {
	cliente, err := s.api.GetCliente(s.ctx, params["id"])
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Cliente\n")

	if params["tab"] == "recorrencias" {
		recorrencias, err := s.api.ListRecorrenciasByCliente(s.ctx, cliente.ID.String())
		if err != nil {
			return err
		}
		b.WriteString(cliente.Nome + " - " + utils.FormatCPF(cliente.CPF) + "\n\n")
		if len(recorrencias) == 0 {
			b.WriteString("Sem recorrências cadastradas.")
		} else {
			table, err := s.recorrenciasTable(recorrencias)
			if err != nil {
				return err
			}
			b.WriteString(table)
		}
		s.router.RenderContent(b.String())
		return nil
	}

	info, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Nome", cliente.Nome},
		{"CPF", utils.FormatCPF(cliente.CPF)},
		{"Telefone", utils.OrDash(utils.FormatPhone(cliente.Telefone))},
		{"Email", utils.OrDash(cliente.Email)},
		{"Observações", utils.OrDash(cliente.Observacoes)},
	}).Srender()
	if err != nil {
		return err
	}
	b.WriteString(info)
	b.WriteString("\n\nRecorrências: #/clientes/" + cliente.ID.String() + "?tab=recorrencias")
	s.router.RenderContent(b.String())
	return nil
}

func (s *Shell) recorrenciasView(params hashrouter.Params) error {
	recorrencias, err := s.api.ListRecorrencias(s.ctx, apiclient.RecorrenciaFiltro{
		ClienteID: params["cliente"],
		Status:    params["status"],
	})
	if err != nil {
		return err
	}
	if len(recorrencias) == 0 {
		s.router.RenderContent("Nenhuma recorrência encontrada.")
		return nil
	}

	table, err := s.recorrenciasTable(recorrencias)
	if err != nil {
		return err
	}
	s.router.RenderContent("Recorrências\n" + table)
	return nil
}

func (s *Shell) recorrenciasTable(recorrencias []models.Recorrencia) (string, error) {
	data := pterm.TableData{{"Cliente", "Próxima compra", "Intervalo", "Valor", "Status", "Rota"}}
	for _, r := range recorrencias {
		nome := "-"
		if r.Cliente != nil {
			nome = r.Cliente.Nome
		}
		data = append(data, []string{
			nome,
			proximaCompraLabel(s.now(), r),
			fmt.Sprintf("%d dias", r.IntervaloDias),
			utils.FormatCurrency(r.ValorTotal),
			r.Status,
			"#/recorrencias/" + r.ID.String(),
		})
	}
	return renderTable(data)
}

func (s *Shell) recorrenciaView(params hashrouter.Params) error {
	r, err := s.api.GetRecorrencia(s.ctx, params["id"])
	if err != nil {
		return err
	}
	historico, err := s.api.GetHistorico(s.ctx, params["id"])
	if err != nil {
		return err
	}

	nome := "-"
	if r.Cliente != nil {
		nome = r.Cliente.Nome
	}

	var b strings.Builder
	info, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Cliente", nome},
		{"Status", r.Status},
		{"Intervalo", fmt.Sprintf("%d dias", r.IntervaloDias)},
		{"Última compra", utils.FormatDate(r.UltimaCompra.Time())},
		{"Próxima compra", proximaCompraLabel(s.now(), *r)},
		{"Valor total", utils.FormatCurrency(r.ValorTotal)},
		{"Observações", utils.OrDash(r.Observacoes)},
	}).Srender()
	if err != nil {
		return err
	}
	b.WriteString("Recorrência\n" + info + "\n\n")

	if len(r.Produtos) > 0 {
		data := pterm.TableData{{"Produto", "Quantidade", "Preço unitário", "Subtotal"}}
		for _, l := range r.Produtos {
			produto := l.ProdutoID.String()
			if l.Produto != nil {
				produto = l.Produto.Codigo + " - " + l.Produto.Nome
			}
			data = append(data, []string{
				produto,
				fmt.Sprint(l.Quantidade),
				utils.FormatCurrency(l.PrecoUnitario),
				utils.FormatCurrency(l.Subtotal),
			})
		}
		table, err := renderTable(data)
		if err != nil {
			return err
		}
		b.WriteString("Produtos\n" + table + "\n")
	}

	b.WriteString("Histórico\n")
	if len(historico) == 0 {
		b.WriteString("Nenhuma compra registrada.")
	} else {
		data := pterm.TableData{{"Data", "Valor", "Status", "Observações"}}
		for _, h := range historico {
			data = append(data, []string{
				utils.FormatDate(h.Data.Time()),
				utils.FormatCurrency(h.Valor),
				h.Status,
				utils.OrDash(h.Observacoes),
			})
		}
		table, err := renderTable(data)
		if err != nil {
			return err
		}
		b.WriteString(table)
	}

	s.router.RenderContent(b.String())
	return nil
}

func (s *Shell) produtosView(params hashrouter.Params) error {
	var (
		produtos []models.Produto
		err      error
	)
	if busca := strings.TrimSpace(params["busca"]); busca != "" {
		produtos, err = s.api.SearchProdutos(s.ctx, busca)
	} else {
		produtos, err = s.api.ListProdutos(s.ctx)
	}
	if err != nil {
		return err
	}
	if len(produtos) == 0 {
		s.router.RenderContent("Nenhum produto encontrado.")
		return nil
	}

	data := pterm.TableData{{"Código", "Nome", "Preço"}}
	for _, p := range produtos {
		data = append(data, []string{p.Codigo, p.Nome, utils.FormatCurrency(p.Preco)})
	}
	table, err := renderTable(data)
	if err != nil {
		return err
	}
	s.router.RenderContent("Produtos\n" + table)
	return nil
}
