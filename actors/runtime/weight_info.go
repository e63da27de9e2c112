package runtime

// RcWeightInfo is the cost model for work done on the source chain.
type RcWeightInfo interface {
	// Cost of withdrawing and converting one account.
	WithdrawAccount() Weight
	// Cost of taking and converting one staking storage entry.
	MigrateStakingItem() Weight
	// Cost of appending an encoded record of the given size to an outbound message.
	PushItem(size int) Weight
}

// AhWeightInfo is the cost model for applying migrated records on the destination chain.
type AhWeightInfo interface {
	// Cost of applying a message with n accounts. Liquid accounts carry no holds, freezes,
	// locks or reserves and are cheaper to apply.
	ReceiveAccounts(n uint32, liquid bool) Weight
	// Cost of applying a message with n staking entries.
	ReceiveStakingMessages(n uint32) Weight
}

// LinearRcWeights charges a fixed cost per item plus a per-byte cost for outbound payloads.
type LinearRcWeights struct {
	Withdraw    Weight
	StakingItem Weight
	PerByte     Weight
}

var _ RcWeightInfo = LinearRcWeights{}

func (w LinearRcWeights) WithdrawAccount() Weight    { return w.Withdraw }
func (w LinearRcWeights) MigrateStakingItem() Weight { return w.StakingItem }
func (w LinearRcWeights) PushItem(size int) Weight   { return w.PerByte.Mul(uint64(size)) }

// LinearAhWeights charges a base cost per message plus a fixed cost per item.
type LinearAhWeights struct {
	MessageBase    Weight
	LiquidAccount  Weight
	Account        Weight
	StakingMessage Weight
}

var _ AhWeightInfo = LinearAhWeights{}

func (w LinearAhWeights) ReceiveAccounts(n uint32, liquid bool) Weight {
	if n == 0 {
		return ZeroWeight
	}
	per := w.Account
	if liquid {
		per = w.LiquidAccount
	}
	return w.MessageBase.Add(per.Mul(uint64(n)))
}

func (w LinearAhWeights) ReceiveStakingMessages(n uint32) Weight {
	if n == 0 {
		return ZeroWeight
	}
	return w.MessageBase.Add(w.StakingMessage.Mul(uint64(n)))
}

// Reference costs, measured in picoseconds of execution and bytes of proof.
var (
	DefaultRcWeights = LinearRcWeights{
		Withdraw:    NewWeight(180_000_000, 9_000),
		StakingItem: NewWeight(40_000_000, 3_500),
		PerByte:     NewWeight(2_000, 1),
	}
	DefaultAhWeights = LinearAhWeights{
		MessageBase:    NewWeight(25_000_000, 1_500),
		LiquidAccount:  NewWeight(60_000_000, 3_600),
		Account:        NewWeight(210_000_000, 11_000),
		StakingMessage: NewWeight(45_000_000, 4_000),
	}
)
