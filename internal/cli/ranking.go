package cli

import (
	"fmt"

	"pet-adoption-hub/internal/adapters/lock/local"
	pg "pet-adoption-hub/internal/adapters/storage/postgres"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/jobs"
	"pet-adoption-hub/internal/platform/logger"

	"github.com/spf13/cobra"
)

func newRankingCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Ranking maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Set every user's points to zero (achievements are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := opts.open()
			if err != nil {
				return err
			}
			defer db.Close()

			log := logger.NewFromEnv()
			s := pg.NewStore(db)
			svc := rewards.NewService(pg.RewardsTx(s), pg.NewRewardsRepo(s), rewards.NewLedger(pg.NewToggle(s), log), nil, log)

			n, err := jobs.NewRankingReset(svc, local.NewLocker(), log).RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ranking reset: %d users\n", n)
			return nil
		},
	})

	return cmd
}
