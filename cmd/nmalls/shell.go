package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nmalls-recorrencia/hashrouter"
)

const shellErrorView = "Erro! Ocorreu um erro ao carregar esta página. Tente novamente mais tarde."

// terminalSink draws views as plain text.
type terminalSink struct {
	out     io.Writer
	loading bool
}

func (s *terminalSink) Render(content string) {
	fmt.Fprintln(s.out, strings.TrimRight(content, "\n"))
}

func (s *terminalSink) ShowLoading() {
	if !s.loading {
		fmt.Fprintln(s.out, "Carregando...")
	}
	s.loading = true
}

func (s *terminalSink) HideLoading() {
	s.loading = false
}

// Shell browses the panel routes from the terminal. Input lines are
// fragments such as "/clientes?busca=ana" or "#/recorrencias/<id>".
type Shell struct {
	ctx      context.Context
	api      PanelAPI
	baseURL  string
	out      io.Writer
	now      func() time.Time
	router   *hashrouter.Router
	location *hashrouter.MemoryLocation
}

func NewShell(ctx context.Context, api PanelAPI, baseURL string, out io.Writer) *Shell {
	s := &Shell{
		ctx:      ctx,
		api:      api,
		baseURL:  baseURL,
		out:      out,
		now:      time.Now,
		location: hashrouter.NewMemoryLocation(""),
	}
	s.router = hashrouter.New(&terminalSink{out: out}, s.location,
		hashrouter.WithTemplates(shellTemplates),
		hashrouter.WithErrorView(shellErrorView),
	)
	s.registerRoutes()
	return s
}

// Start shows the default route.
func (s *Shell) Start() {
	s.router.Init()
	s.location.Dispatch()
}

// Go navigates to a fragment typed by the user. Typing the current
// fragment again reloads it.
func (s *Shell) Go(input string) {
	fragment := normalizeRoute(input)
	if fragment == s.location.Fragment() {
		s.router.HandleRouteChange()
		return
	}
	s.location.SetFragment(fragment)
	s.location.Dispatch()
}

// Fragment is the route currently shown.
func (s *Shell) Fragment() string {
	return s.location.Fragment()
}

// Run reads routes from in until EOF or "sair".
func (s *Shell) Run(in io.Reader) error {
	s.Start()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(s.out, "#%s> ", s.location.Fragment())
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "sair", "exit":
			return nil
		case "ajuda", "?":
			s.Go("/ajuda")
		default:
			s.Go(line)
		}
	}
}

// --- Cobra wiring ---

func newShellCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Navegar pelo painel no terminal",
		Long:  "Abre um console interativo com as rotas do painel (/, /clientes, /recorrencias, /produtos). Digite ajuda para ver as rotas.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.token == "" {
				return errors.New("Sessão não encontrada. Execute nmalls login primeiro.")
			}
			sh := NewShell(cmd.Context(), s.api, s.baseURL, cmd.OutOrStdout())
			return sh.Run(cmd.InOrStdin())
		},
	}
}
