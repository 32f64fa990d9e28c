package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.com/nubelio/licences/storefront-client/internal/bootstrap"
)

func newLoginCmd(app *bootstrap.App, p *printer) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the licences API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = promptLine("Mot de passe: ")
			}
			user, err := app.Auth().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			p.Success("Connecté en tant que %s (%s)", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(app *bootstrap.App, p *printer) *cobra.Command {
	var name, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = promptLine("Mot de passe: ")
			}
			if confirm == "" {
				confirm = promptLine("Confirmez le mot de passe: ")
			}
			user, err := app.Auth().Register(cmd.Context(), name, email, password, confirm)
			if err != nil {
				return err
			}
			p.Success("Compte créé pour %s (%s)", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *bootstrap.App, p *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth().Logout(cmd.Context()); err != nil {
				return err
			}
			app.Cart().Reset()
			p.Success("Déconnecté.")
			return nil
		},
	}
}

func newWhoamiCmd(app *bootstrap.App, p *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth().Initialize(cmd.Context()); err != nil {
				return err
			}
			user := app.Auth().CurrentUser()
			if user == nil {
				p.Warning("Non connecté.")
				return nil
			}
			p.Info("%s <%s> (%s)", user.Name, user.Email, user.Role)
			return nil
		},
	}
}

func promptLine(label string) string {
	os.Stderr.WriteString(label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
