package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"nmalls-recorrencia/apiclient"
	"nmalls-recorrencia/logger"
	"nmalls-recorrencia/models"
	"nmalls-recorrencia/utils"
)

// ConsultarCmd looks a client up by CPF and lists its recurrences.
type ConsultarCmd struct {
	api     PanelAPI
	baseURL string
	out     io.Writer
	now     func() time.Time
}

func (c ConsultarCmd) Run(ctx context.Context, cpf string) error {
	cpf = utils.NormalizeCPF(cpf)
	if !utils.ValidCPF(cpf) {
		return errors.New("CPF inválido. Informe os 11 dígitos.")
	}

	cliente, err := c.api.GetClienteByCPF(ctx, cpf)
	if errors.Is(err, apiclient.ErrNotFound) {
		fmt.Fprint(c.out, pterm.Warning.Sprintln("Cliente não encontrado. Deseja cadastrá-lo no painel?"))
		fmt.Fprintf(c.out, "Cadastrar novo cliente: %s\n", panelLink(c.baseURL, "/clientes/novo?cpf="+cpf))
		return nil
	}
	if err != nil {
		return fmt.Errorf("Erro ao consultar cliente: %w", err)
	}

	info, err := clienteTable(cliente)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, info)

	// A failed recurrence lookup still shows the client.
	recorrencias, err := c.api.ListRecorrenciasByCliente(ctx, cliente.ID.String())
	if err != nil {
		logger.Logger.Warn().Err(err).Str("cliente_id", cliente.ID.String()).Msg("Erro ao carregar recorrências")
		fmt.Fprint(c.out, pterm.Warning.Sprintln("Não foi possível carregar as recorrências deste cliente."))
		fmt.Fprintf(c.out, "Ver no painel: %s\n", panelLink(c.baseURL, "/recorrencias?cliente="+cliente.ID.String()))
		return nil
	}

	if len(recorrencias) == 0 {
		fmt.Fprintln(c.out, "Sem recorrências cadastradas.")
		fmt.Fprintf(c.out, "Cadastrar recorrência: %s\n", panelLink(c.baseURL, "/recorrencias/nova?cliente="+cliente.ID.String()))
		return nil
	}

	fmt.Fprintln(c.out, pterm.DefaultSection.Sprint("Recorrências"))
	data := pterm.TableData{{"Próxima compra", "Intervalo", "Valor", "Status", "Detalhes"}}
	for _, r := range recorrencias {
		data = append(data, []string{
			proximaCompraLabel(c.now(), r),
			fmt.Sprintf("%d dias", r.IntervaloDias),
			utils.FormatCurrency(r.ValorTotal),
			r.Status,
			panelLink(c.baseURL, "/recorrencias/"+r.ID.String()),
		})
	}
	table, err := renderTable(data)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, table)
	return nil
}

// panelLink builds a URL into the web panel for a hash route.
func panelLink(baseURL, route string) string {
	return baseURL + "/#" + route
}

func proximaCompraLabel(now time.Time, r models.Recorrencia) string {
	day := r.ProximaCompra.Time()
	return fmt.Sprintf("%s (%s)", utils.FormatDate(day), utils.RelativeDay(now, day))
}

func clienteTable(c *models.Cliente) (string, error) {
	return pterm.DefaultTable.WithData(pterm.TableData{
		{"Nome", c.Nome},
		{"CPF", utils.FormatCPF(c.CPF)},
		{"Telefone", utils.OrDash(utils.FormatPhone(c.Telefone))},
	}).Srender()
}

func renderTable(data pterm.TableData) (string, error) {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	return s + "\n", nil
}

// --- Cobra wiring ---

func newConsultarCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "consultar <cpf>",
		Short: "Consultar cliente por CPF",
		Long:  "Mostra os dados de um cliente e suas recorrências a partir do CPF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ConsultarCmd{api: s.api, baseURL: s.baseURL, out: cmd.OutOrStdout(), now: time.Now}
			return c.Run(cmd.Context(), args[0])
		},
	}
}
