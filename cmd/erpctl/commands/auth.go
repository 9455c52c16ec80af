package commands

import (
	"erp/internal/client/api"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errPasswordMismatch = errors.New("passwords do not match")

func (a *app) newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and start a session",
		Long: `Log in with a username (or the account email) and password.

The session ends after 30 minutes without a command, on logout, or when the
server rejects the token.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := a.argOrPrompt(args, "Username")
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = a.prompt.Password("Password"); err != nil {
					return err
				}
			}

			user, err := a.svc.Login(a.ctx(cmd), username, password)
			if err != nil {
				return err
			}

			a.printer().printf("Logged in as %s\n", user.Username)

			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")

	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.svc.Logout()
			a.printer().println("Logged out")

			return nil
		},
	}
}

func (a *app) newRegisterCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := a.argOrPrompt(args, "Username")
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = a.newPassword(); err != nil {
					return err
				}
			}

			input := &api.RegisterRequest{Username: username, Password: password}
			if email != "" {
				input.Email = &email
			}

			user, err := a.svc.Register(a.ctx(cmd), input)
			if err != nil {
				return err
			}

			a.printer().printf("Registered %s, run 'erpctl login %s' to start a session\n", user.Username, user.Username)

			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")

	return cmd
}

func (a *app) newMeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.svc.Me(a.ctx(cmd))
			if err != nil {
				return err
			}

			return a.printer().print(userDetail(*user))
		},
	}
	cmd.AddCommand(a.newMeUpdateCmd())

	return cmd
}

func (a *app) newMeUpdateCmd() *cobra.Command {
	var (
		email          string
		changePassword bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the account email or password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &api.UpdateProfileRequest{}
			if cmd.Flags().Changed("email") {
				input.Email = &email
			}
			if changePassword {
				password, err := a.newPassword()
				if err != nil {
					return err
				}
				input.Password = &password
			}
			if input.Email == nil && input.Password == nil {
				return errors.New("nothing to update, use --email or --password")
			}

			user, err := a.svc.UpdateMe(a.ctx(cmd), input)
			if err != nil {
				return err
			}

			return a.printer().print(userDetail(*user))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "New email address (empty clears it)")
	cmd.Flags().BoolVar(&changePassword, "password", false, "Prompt for a new password")

	return cmd
}

func (a *app) argOrPrompt(args []string, label string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	return a.prompt.Input(label, "")
}

func (a *app) newPassword() (string, error) {
	password, err := a.prompt.Password("Password")
	if err != nil {
		return "", err
	}
	confirm, err := a.prompt.Password("Confirm password")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errPasswordMismatch
	}

	return password, nil
}
