package cli

import (
	"github.com/RushabhMehta2005/stores-api/database"
	"github.com/RushabhMehta2005/stores-api/logging"
	"github.com/spf13/cobra"
)

func NewMigrateCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
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

			logging.Info().Msg("Running database migrations...")
			if err := database.Migrate(db); err != nil {
				return err
			}
			logging.Info().Msg("Database migrated successfully!")
			return nil
		},
	}
}
