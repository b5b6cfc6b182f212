package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/db"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/secret"
)

func init() { //nolint: gochecknoinits
	userAddCmd.Flags().StringVar(&newUser.Email, "email", "", "login email (required)")
	userAddCmd.Flags().StringVar(&newUser.Name, "name", "", "display name (required)")
	userAddCmd.Flags().StringVar(&newUserRole, "role", string(rbac.RoleViewer), "VIEWER, EDITOR or ADMIN")
	userAddCmd.Flags().StringVar(&newUser.Password, "password", "", "password, generated when empty")
	userAddCmd.Flags().DurationVar(&newUserValidFor, "valid-for", 0, "account lifetime, unlimited when zero")

	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("name")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	newUser         auth.NewUser
	newUserRole     string
	newUserValidFor time.Duration

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}

	userAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := rbac.ParseRole(newUserRole)
			if err != nil {
				return fmt.Errorf("%w: %s", err, newUserRole)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := db.Open(&cfg.DB)
			if err != nil {
				return err
			}

			nu := newUser
			nu.Role = role
			nu.Active = true

			generated := nu.Password == ""
			if generated {
				if nu.Password, err = secret.Password(); err != nil {
					return err
				}
			}

			if newUserValidFor > 0 {
				until := time.Now().Add(newUserValidFor)
				nu.ValidUntil = &until
			}

			u, err := auth.NewLocalProvider(conn).CreateUser(context.Background(), nu)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "created user %d <%s> with role %s\n", u.ID, u.Email, u.Role)

			if generated {
				_, _ = fmt.Fprintf(out, "password: %s\n", nu.Password)
			}

			return nil
		},
	}
)
