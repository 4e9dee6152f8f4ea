package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/tripclient/api/auth"
)

// passwordEnv supplies the password when --password is omitted.
const passwordEnv = "TRIP_PASSWORD"

func passwordFlag(value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if env := os.Getenv(passwordEnv); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("--password or %s is required", passwordEnv)
}

// loginResult is the rendered outcome of login. The token itself stays in
// the token file.
type loginResult struct {
	Username  string     `json:"username"`
	TokenType string     `json:"token_type,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	TokenFile string     `json:"token_file"`
}

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := passwordFlag(password)
			if err != nil {
				return err
			}
			tok, err := a.auth.Login(cmd.Context(), auth.LoginRequest{Username: username, Password: pw})
			if err != nil {
				return err
			}
			if err := a.store.Save(a.tokenFile); err != nil {
				return err
			}
			res := loginResult{Username: username, TokenType: tok.TokenType, TokenFile: a.tokenFile}
			if claims, ok := a.store.Claims(); ok && !claims.ExpiresAt.IsZero() {
				res.ExpiresAt = &claims.ExpiresAt
			}
			return a.render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Logged in as %s\n", username)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (or "+passwordEnv+")")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.store.Clear()
			if err := a.store.Save(a.tokenFile); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var req auth.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := passwordFlag(req.Password)
			if err != nil {
				return err
			}
			req.Password = pw
			user, err := a.auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(cmd, user, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Registered %s (id %d)\n", user.Username, user.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "account username")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password (or "+passwordEnv+")")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.store.SignedIn() {
				return fmt.Errorf("not signed in; run `tripctl login`")
			}
			user, err := a.auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, user, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s <%s>\n", user.Username, user.Email)
				return err
			})
		},
	}
}
