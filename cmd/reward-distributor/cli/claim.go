package cli

import (
	"encoding/json"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ClaimCmd runs a single claim for a reward entry and prints its outcome, e.g.
// ./reward-distributor claim <entry id> --destination <account> --config config.yml
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim [entryID]",
		Short: "Claim accrued rewards of a reward entry",
		Args:  cobra.ExactArgs(1),
		RunE:  claim,
	}

	cmd.Flags().String("destination", "", "Account receiving the rewards (defaults to the stored payout destination)")

	return cmd
}

func claim(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	destination, err := cmd.Flags().GetString("destination")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := newComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.close(ctx)

	outcome, err := c.service.Claim(ctx, services.ClaimRequest{
		EntryID:     args[0],
		Destination: destination,
	})
	if err != nil {
		return fmt.Errorf("claim of %s failed: %w", args[0], err)
	}

	out, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("claim_id", outcome.ClaimID).Msg("claim finished")
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}
