package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/taskdeck/internal/validate"
	"github.com/me/taskdeck/pkg/taskapi"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session",
		Long:  "Log in to the taskdeck server and persist the session for subsequent commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = promptLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: "); err != nil {
					return err
				}
			}

			req := taskapi.LoginRequest{Email: email, Password: password}
			if err := validate.Struct(req); err != nil {
				return err
			}

			result, err := client.Login(cmd.Context(), req)
			if err != nil {
				return err
			}

			profile := result.Profile
			if err := sessions.Login(cmd.Context(), result.Token, &profile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", profile.DisplayName(), profile.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, user := sessions.Current()
			if token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in (no profile on record).")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>", user.DisplayName(), user.Email)
			if user.IsAdmin {
				fmt.Fprint(cmd.OutOrStdout(), " [admin]")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
