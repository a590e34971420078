package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/taskdeck/internal/validate"
	"github.com/me/taskdeck/pkg/taskapi"
)

func newRegisterCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name == "" {
				if name, err = promptLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Name: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Password (min 6 characters): "); err != nil {
					return err
				}
			}

			req := taskapi.RegisterRequest{Name: name, Email: email, Password: password}
			if err := validate.Struct(req); err != nil {
				return err
			}

			message, err := client.Register(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), message)
			fmt.Fprintln(cmd.OutOrStdout(), "You can now log in with: taskdeck login")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (prompted if omitted)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	return cmd
}
