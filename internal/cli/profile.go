package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/taskdeck/internal/validate"
	"github.com/me/taskdeck/pkg/taskapi"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileUpdateCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, user := sessions.Current()
			if user == nil {
				return fmt.Errorf("not logged in")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name:  %s\n", user.DisplayName())
			fmt.Fprintf(cmd.OutOrStdout(), "Email: %s\n", user.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Admin: %v\n", user.IsAdmin)
			return nil
		},
	}
}

func newProfileUpdateCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update name, email, or password",
		Long:  "Update the account profile on the server and refresh the stored session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, user := sessions.Current()
			if user == nil {
				return fmt.Errorf("not logged in")
			}

			// Unchanged fields keep their current values.
			if name == "" {
				name = user.Name
			}
			if email == "" {
				email = user.Email
			}

			req := taskapi.UpdateProfileRequest{Name: name, Email: email, Password: password}
			if err := validate.Struct(req); err != nil {
				return err
			}

			updated, err := client.UpdateProfile(cmd.Context(), user.ID, req)
			if err != nil {
				return err
			}

			// The token is unchanged; only the profile is refreshed.
			if err := sessions.Login(cmd.Context(), token, updated); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s <%s>\n", updated.DisplayName(), updated.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New full name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&password, "password", "", "New password (leave empty to keep current)")
	return cmd
}
