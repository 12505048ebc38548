package cli

import (
	"fmt"

	pg "pet-adoption-hub/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

func newGamificationCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "gamification <status|on|off>",
		Short:     "Show or change the global gamification toggle",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"status", "on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open()
			if err != nil {
				return err
			}
			defer db.Close()

			toggle := pg.NewToggle(pg.NewStore(db))

			switch args[0] {
			case "on", "off":
				if err := toggle.SetGamificationEnabled(cmd.Context(), args[0] == "on"); err != nil {
					return err
				}
			}

			on, err := toggle.GamificationEnabled(cmd.Context())
			if err != nil {
				return err
			}
			state := "disabled"
			if on {
				state = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gamification %s\n", state)
			return nil
		},
	}
	return cmd
}
