package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/ahm-project/migrator/actors/builtin/balances"
	"github.com/ahm-project/migrator/actors/builtin/paras"
	"github.com/ahm-project/migrator/actors/builtin/staking"
	"github.com/ahm-project/migrator/actors/migration/ahm"
)

func main() {
	// Source chain state
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/balances/cbor_gen.go", "balances",
		balances.AccountInfo{},
		balances.IDAmount{},
		balances.IDAmounts{},
		balances.BalanceLock{},
		balances.Locks{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/staking/cbor_gen.go", "staking",
		staking.Marker{},
		staking.UnlockChunk{},
		staking.StakingLedger{},
		staking.Nominations{},
		staking.ValidatorPrefs{},
		staking.RewardPoint{},
		staking.EraRewardPoints{},
		staking.SlashOther{},
		staking.UnappliedSlash{},
		staking.UnappliedSlashes{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/paras/cbor_gen.go", "paras",
		paras.ParaInfo{},
	); err != nil {
		panic(err)
	}

	// Migration
	if err := gen.WriteTupleEncodersToFile("./actors/migration/ahm/cbor_gen.go", "ahm",
		// persisted progress
		ahm.AccountDisposition{},
		ahm.Tracker{},
		ahm.Cursor{},
		ahm.MigrationStage{},
		// outbound messages
		ahm.PortableAmount{},
		ahm.AccountRecord{},
		ahm.StakingMessage{},
		ahm.Envelope{},
		// checks
		ahm.AccountExpectation{},
		ahm.Snapshot{},
	); err != nil {
		panic(err)
	}
}
