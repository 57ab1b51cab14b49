package cli

import (
	"fmt"

	"github.com/RushabhMehta2005/stores-api/database"
	"github.com/RushabhMehta2005/stores-api/repository"
	"github.com/RushabhMehta2005/stores-api/services"
	"github.com/spf13/cobra"
)

type userAddOptions struct {
	username string
	password string
}

// NewUserAddCommand seeds a login without going through the HTTP API.
func NewUserAddCommand(root *RootOptions) *cobra.Command {
	opts := &userAddOptions{}

	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Create a user that can log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			hasher := services.NewHasher(1, cfg.Auth.BcryptCost)
			defer hasher.Close()
			tokens := services.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
			auth := services.NewAuthService(repository.NewUserRepository(db), hasher, tokens)

			user, err := auth.Register(cmd.Context(), opts.username, opts.password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
