package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

const keyringService = "nmalls-recorrencia"

// TokenStore persists one API token per panel address.
type TokenStore interface {
	Get(server string) (string, error)
	Set(server, token string) error
	Delete(server string) error
}

type keyringStore struct{}

// Get returns "" when no token is stored.
func (keyringStore) Get(server string) (string, error) {
	token, err := keyring.Get(keyringService, server)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token from keyring: %w", err)
	}
	return token, nil
}

func (keyringStore) Set(server, token string) error {
	if err := keyring.Set(keyringService, server, token); err != nil {
		return fmt.Errorf("store token in keyring: %w", err)
	}
	return nil
}

func (keyringStore) Delete(server string) error {
	err := keyring.Delete(keyringService, server)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token from keyring: %w", err)
	}
	return nil
}

// LoginCmd authenticates against the panel and stores the token.
type LoginCmd struct {
	api     PanelAPI
	tokens  TokenStore
	baseURL string
	out     io.Writer
}

type LoginInput struct {
	Email string
	Senha string
}

func (c LoginCmd) Run(ctx context.Context, in LoginInput) error {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Senha == "" {
		return errors.New("Email e senha são obrigatórios")
	}

	token, err := c.api.Login(ctx, in.Email, in.Senha)
	if err != nil {
		return err
	}
	if err := c.tokens.Set(c.baseURL, token); err != nil {
		return err
	}

	fmt.Fprint(c.out, pterm.Success.Sprintf("Login realizado em %s\n", c.baseURL))
	return nil
}

// --- Cobra wiring ---

func newLoginCmd(d deps, s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Entrar no painel",
		Long:  "Autentica no painel e guarda o token no chaveiro do sistema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			senha, _ := cmd.Flags().GetString("senha")

			var err error
			if email == "" {
				email, err = pterm.DefaultInteractiveTextInput.Show("Email")
				if err != nil {
					return err
				}
			}
			if senha == "" {
				senha, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Senha")
				if err != nil {
					return err
				}
			}

			c := LoginCmd{api: s.api, tokens: d.tokens, baseURL: s.baseURL, out: cmd.OutOrStdout()}
			return c.Run(cmd.Context(), LoginInput{Email: email, Senha: senha})
		},
	}
	cmd.Flags().String("email", "", "Email do usuário")
	cmd.Flags().String("senha", "", "Senha (solicitada interativamente se omitida)")
	return cmd
}

func newLogoutCmd(d deps, s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sair do painel",
		Long:  "Remove o token guardado para o painel atual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := d.tokens.Delete(s.baseURL); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintln("Logout realizado"))
			return nil
		},
	}
}
