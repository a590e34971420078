package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer user accounts",
	}
	cmd.AddCommand(newUsersListCmd(), newUsersRmCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sessions.IsAdmin() {
				return fmt.Errorf("admin privileges required")
			}

			users, err := client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(users) == 0 {
				fmt.Fprintln(out, "No users found.")
				return nil
			}

			fmt.Fprintf(out, "%-26s  %-24s  %-30s  %s\n", "ID", "NAME", "EMAIL", "ROLE")
			fmt.Fprintf(out, "%-26s  %-24s  %-30s  %s\n", "--", "----", "-----", "----")
			for _, u := range users {
				role := "user"
				if u.IsAdmin {
					role = "admin"
				}
				fmt.Fprintf(out, "%-26s  %-24s  %-30s  %s\n", u.ID, u.DisplayName(), u.Email, role)
			}
			return nil
		},
	}
}

func newUsersRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <user_id>",
		Short: "Delete an account (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sessions.IsAdmin() {
				return fmt.Errorf("admin privileges required")
			}
			id := args[0]

			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete user %s?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := client.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
