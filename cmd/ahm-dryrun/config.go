package main

import (
	"fmt"
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/migration/ahm"
	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util"
	"github.com/ahm-project/migrator/actors/util/math"
)

// Configuration keys. Each may also be set through an AHM_ prefixed environment variable.
const (
	keyRcExistentialDeposit = "rc_existential_deposit"
	keyAhExistentialDeposit = "ah_existential_deposit"
	keyMaxRcRefTime         = "max_rc_weight.ref_time"
	keyMaxRcProofSize       = "max_rc_weight.proof_size"
	keyMaxAhRefTime         = "max_ah_weight.ref_time"
	keyMaxAhProofSize       = "max_ah_weight.proof_size"
	keyMaxXcmSize           = "max_xcm_size"
	keyMaxItemsPerBlock     = "max_items_per_block"
	keyMaxXcmMsgPerBlock    = "max_xcm_msg_per_block"
	keyPreservedAccounts    = "preserved_accounts"
	keyPartialHoldRelease   = "partial_hold_release"
	keyDefensive            = "defensive"
)

func setDefaults(v *viper.Viper) {
	d := ahm.DefaultConfig()
	v.SetDefault(keyRcExistentialDeposit, d.RcExistentialDeposit.String())
	v.SetDefault(keyAhExistentialDeposit, d.AhExistentialDeposit.String())
	v.SetDefault(keyMaxRcRefTime, d.MaxRcWeight.RefTime)
	v.SetDefault(keyMaxRcProofSize, d.MaxRcWeight.ProofSize)
	v.SetDefault(keyMaxAhRefTime, d.MaxAhWeight.RefTime)
	v.SetDefault(keyMaxAhProofSize, d.MaxAhWeight.ProofSize)
	v.SetDefault(keyMaxXcmSize, d.MaxXcmSize)
	v.SetDefault(keyMaxItemsPerBlock, d.MaxItemsPerBlock)
	v.SetDefault(keyMaxXcmMsgPerBlock, d.MaxXcmMsgPerBlock)
	v.SetDefault(keyPreservedAccounts, []string{})
	v.SetDefault(keyPartialHoldRelease, d.PartialHoldRelease)
	v.SetDefault(keyDefensive, d.Defensive.String())
}

// loadConfig builds a migration config from the defaults overridden by v.
func loadConfig(v *viper.Viper) (ahm.Config, error) {
	cfg := ahm.DefaultConfig()
	var err error
	if cfg.RcExistentialDeposit, err = math.ParseTokenAmount(v.GetString(keyRcExistentialDeposit)); err != nil {
		return cfg, xerrors.Errorf("%s: %w", keyRcExistentialDeposit, err)
	}
	if cfg.AhExistentialDeposit, err = math.ParseTokenAmount(v.GetString(keyAhExistentialDeposit)); err != nil {
		return cfg, xerrors.Errorf("%s: %w", keyAhExistentialDeposit, err)
	}
	cfg.MaxRcWeight = runtime.NewWeight(v.GetUint64(keyMaxRcRefTime), v.GetUint64(keyMaxRcProofSize))
	cfg.MaxAhWeight = runtime.NewWeight(v.GetUint64(keyMaxAhRefTime), v.GetUint64(keyMaxAhProofSize))
	cfg.MaxXcmSize = v.GetInt(keyMaxXcmSize)
	cfg.MaxItemsPerBlock = v.GetInt(keyMaxItemsPerBlock)
	cfg.MaxXcmMsgPerBlock = v.GetInt(keyMaxXcmMsgPerBlock)
	cfg.PartialHoldRelease = v.GetBool(keyPartialHoldRelease)

	for _, s := range v.GetStringSlice(keyPreservedAccounts) {
		a, err := addr.NewFromString(s)
		if err != nil {
			return cfg, xerrors.Errorf("preserved account %q: %w", s, err)
		}
		cfg.PreservedAccounts = append(cfg.PreservedAccounts, a)
	}

	switch mode := v.GetString(keyDefensive); mode {
	case util.DefensiveSoft.String():
		cfg.Defensive = util.DefensiveSoft
	case util.DefensiveHard.String():
		cfg.Defensive = util.DefensiveHard
	default:
		return cfg, xerrors.Errorf("%s: unknown mode %q", keyDefensive, mode)
	}
	return cfg, cfg.Validate()
}

func printConfig(w io.Writer, cfg *ahm.Config) {
	fmt.Fprintf(w, "%s: %v\n", keyRcExistentialDeposit, cfg.RcExistentialDeposit)
	fmt.Fprintf(w, "%s: %v\n", keyAhExistentialDeposit, cfg.AhExistentialDeposit)
	fmt.Fprintf(w, "max_rc_weight: %s\n", cfg.MaxRcWeight)
	fmt.Fprintf(w, "max_ah_weight: %s\n", cfg.MaxAhWeight)
	fmt.Fprintf(w, "%s: %d\n", keyMaxXcmSize, cfg.MaxXcmSize)
	fmt.Fprintf(w, "%s: %d\n", keyMaxItemsPerBlock, cfg.MaxItemsPerBlock)
	fmt.Fprintf(w, "%s: %d\n", keyMaxXcmMsgPerBlock, cfg.MaxXcmMsgPerBlock)
	fmt.Fprintf(w, "%s: %v\n", keyPreservedAccounts, cfg.PreservedAccounts)
	fmt.Fprintf(w, "%s: %t\n", keyPartialHoldRelease, cfg.PartialHoldRelease)
	fmt.Fprintf(w, "%s: %s\n", keyDefensive, cfg.Defensive)
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective migration config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			printConfig(cmd.OutOrStdout(), &cfg)
			return nil
		},
	}
}
