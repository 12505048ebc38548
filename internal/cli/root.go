package cli

import (
	"database/sql"
	"errors"
	"strings"

	pg "pet-adoption-hub/internal/adapters/storage/postgres"
	"pet-adoption-hub/internal/config"

	"github.com/spf13/cobra"
)

var errNoDSN = errors.New("database DSN required (--dsn or DB_DSN)")

// RootOptions son los flags compartidos por todos los comandos.
type RootOptions struct {
	DSN string

	// openDB se reemplaza en tests.
	openDB func(dsn string) (*sql.DB, error)
}

// NewRootCommand arma adoptionctl: tareas operativas que no pasan por la API.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{openDB: pg.Open})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "adoptionctl",
		Short:         "Operational tasks for pet-adoption-hub",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "Postgres DSN (default: DB_DSN)")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newRankingCommand(opts))
	cmd.AddCommand(newGamificationCommand(opts))

	return cmd
}

func (o *RootOptions) open() (*sql.DB, error) {
	dsn := strings.TrimSpace(o.DSN)
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		dsn = cfg.DatabaseURL
	}
	if dsn == "" {
		return nil, errNoDSN
	}
	return o.openDB(dsn)
}
