package cli

import (
	"fmt"

	pg "pet-adoption-hub/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := opts.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := opts.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.MigrateDown(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "last migration reverted")
			return nil
		},
	})

	return cmd
}
