package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/user"
)

// passwordEnv supplies the password when --password is omitted, keeping it
// out of shell history.
const passwordEnv = "FOLIO_USER_PASSWORD"

func userCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard accounts",
	}
	c.AddCommand(userCreateCmd())
	return c
}

func userCreateCmd() *cobra.Command {
	var in user.CreateInput
	var role string

	c := &cobra.Command{
		Use:   "create",
		Short: "Create a dashboard account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				in.Password = os.Getenv(passwordEnv)
			}
			if in.Password == "" {
				return fmt.Errorf("password is required: pass --password or set %s", passwordEnv)
			}
			in.Role = user.Role(role)

			cfg, log, flush, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = flush(cmd.Context()) }()
			if err := persistent(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := openStores(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = st.close(ctx) }()

			u, err := user.NewService(st.users).Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", u.Role, u.Email, u.ID)
			return nil
		},
	}

	c.Flags().StringVar(&in.Email, "email", "", "Account email (required)")
	c.Flags().StringVar(&in.Name, "name", "", "Display name")
	c.Flags().StringVar(&role, "role", string(user.RoleEditor), "Role: admin, editor or viewer")
	c.Flags().StringVar(&in.Password, "password", "", "Password (defaults to $"+passwordEnv+")")
	_ = c.MarkFlagRequired("email")
	return c
}
