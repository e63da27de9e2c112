package ahm

import (
	"context"

	"github.com/filecoin-project/go-state-types/rt"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/runtime"
	"github.com/ahm-project/migrator/actors/util"
	"github.com/ahm-project/migrator/actors/util/adt"
)

// TxnStore is a store whose writes can be rolled back to a snapshot.
type TxnStore interface {
	adt.Store
	Snapshot() int
	RevertToSnapshot(id int) error
}

var _ TxnStore = (*adt.Txn)(nil)

// SkipRecorder keeps an audit trail of items skipped after a conversion failure.
type SkipRecorder interface {
	RecordSkip(stage string, key []byte, cause error) error
}

// StepContext is the state shared by the controllers running in one step.
type StepContext struct {
	Store      TxnStore
	Config     *Config
	Log        Logger
	Tracker    *Tracker
	Dispatcher *Dispatcher
	// Optional.
	Metrics *Metrics
	Skips   SkipRecorder

	observed metricsBuffer
}

// observe queues a metrics update, applied once the step commits.
func (sc *StepContext) observe(fn func(m *Metrics)) {
	sc.observed.add(fn)
}

// Commit applies the metrics updates of a committed step.
func (sc *StepContext) Commit() {
	sc.observed.apply(sc.Metrics)
	sc.observed = nil
}

func (sc *StepContext) defender() util.Defender {
	return util.Defender{Mode: sc.Config.Defensive, Log: sc.Log}
}

// stageDescriptor is one category of source chain state, stored under a common prefix.
type stageDescriptor struct {
	Name   string
	Prefix string
	// Source chain cost of converting one entry.
	Cost func(w runtime.RcWeightInfo) runtime.Weight
	// Convert takes the entry at key out of the source chain, returning the records to send.
	Convert func(sc *StepContext, key, raw []byte) ([]Record, error)
}

// controller is a sequence of stages whose records are sent with the same destination call.
type controller struct {
	Name     string
	Call     uint64
	Stages   []stageDescriptor
	WeightOf func(w runtime.AhWeightInfo) WeightOfFunc
}

// migrateMany converts entries of ctl's stages, starting after last, until the stages are
// exhausted or a budget or per step limit is reached. It returns nil once every stage is done.
// On error the returned cursor is last and the caller must discard the writes of the call.
func migrateMany(ctx context.Context, sc *StepContext, ctl *controller, last *Cursor, meter *runtime.WeightMeter) (*Cursor, error) {
	cfg := sc.Config
	var cur Cursor
	if last != nil {
		cur = Cursor{Stage: last.Stage, LastKey: last.LastKey}
	}
	if cur.Stage > uint64(len(ctl.Stages)) {
		return last, xerrors.Errorf("%s stage %d: %w", ctl.Name, cur.Stage, ErrUnknownStage)
	}

	ahMeter := runtime.NewWeightMeter(cfg.MaxAhWeight)
	batch := NewBatch(cfg.MaxXcmSize, ctl.WeightOf(cfg.AhWeights), cfg.RcWeights.PushItem)
	processed := 0
	// Moving on to a later stage is progress even when no entry was converted.
	advanced := false

loop:
	for cur.Stage < uint64(len(ctl.Stages)) {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		stage := &ctl.Stages[cur.Stage]
		name := stage.Name

		if batch.Len() >= cfg.MaxItemsPerBlock || batch.BatchCount() >= cfg.MaxXcmMsgPerBlock {
			sc.Log.Log(rt.DEBUG, "%s: step limit reached with %d items in %d messages", name, batch.Len(), batch.BatchCount())
			break
		}

		key, raw, found, err := adt.AsMap(sc.Store, stage.Prefix).NextAfter(cur.LastKey)
		if err != nil {
			return last, xerrors.Errorf("failed to read next %s entry: %w", name, err)
		}
		if !found {
			sc.Log.Log(rt.INFO, "%s: done", name)
			cur = Cursor{Stage: cur.Stage + 1}
			advanced = true
			continue
		}

		if err := meter.TryConsume(stage.Cost(cfg.RcWeights)); err != nil {
			if processed == 0 && !advanced {
				return last, xerrors.Errorf("%s: no progress with %s of %s consumed: %w", name, meter.Consumed(), meter.Limit(), ErrOutOfWeight)
			}
			sc.Log.Log(rt.DEBUG, "%s: source weight exhausted after %d items", name, processed)
			break
		}

		snap := sc.Store.Snapshot()
		tracked := *sc.Tracker
		revert := func() error {
			*sc.Tracker = tracked
			if err := sc.Store.RevertToSnapshot(snap); err != nil {
				return xerrors.Errorf("failed to roll back %s key %x: %w", name, key, err)
			}
			return nil
		}

		recs, err := stage.Convert(sc, key, raw)
		if err != nil {
			if rerr := revert(); rerr != nil {
				return last, rerr
			}
			if processed == 0 || isFatal(err) {
				return last, xerrors.Errorf("%s key %x: %w", name, key, err)
			}
			sc.Log.Log(rt.WARN, "%s: skipping key %x: %v", name, key, err)
			sc.observe(func(m *Metrics) { m.skipped(name) })
			if sc.Skips != nil {
				if err := sc.Skips.RecordSkip(name, key, err); err != nil {
					sc.Log.Log(rt.ERROR, "failed to record skipped %s key %x: %v", name, key, err)
				}
			}
			cur.LastKey = key
			processed++
			continue
		}

		if len(recs) > 0 {
			items, err := batch.encode(recs)
			if err != nil {
				return last, xerrors.Errorf("%s key %x: %w", name, key, err)
			}
			w, opened := batch.marginal(items)
			push := batch.pushWeight(items)

			var exhausted string
			switch {
			case !ahMeter.CanConsume(w):
				exhausted = "destination weight"
			case !meter.CanConsume(push):
				exhausted = "source weight"
			case !batch.IsEmpty() && batch.Len()+len(items) > cfg.MaxItemsPerBlock:
				exhausted = "item limit"
			case !batch.IsEmpty() && batch.BatchCount()+opened > cfg.MaxXcmMsgPerBlock:
				exhausted = "message limit"
			}
			if exhausted != "" {
				if rerr := revert(); rerr != nil {
					return last, rerr
				}
				if processed == 0 && !advanced {
					return last, xerrors.Errorf("%s key %x needs destination weight %s and source weight %s beyond %s and %s: %w",
						name, key, w, push, ahMeter.Remaining(), meter.Remaining(), ErrOutOfWeight)
				}
				sc.Log.Log(rt.DEBUG, "%s: %s exhausted after %d items, deferring key %x", name, exhausted, processed, key)
				break loop
			}
			if err := ahMeter.TryConsume(w); err != nil {
				return last, err
			}
			batch.push(items)
			if err := meter.TryConsume(batch.ConsumeWeight()); err != nil {
				return last, err
			}
		}
		sc.observe(func(m *Metrics) { m.migrated(name) })
		cur.LastKey = key
		processed++
	}

	if !batch.IsEmpty() {
		n, err := sc.Dispatcher.SendChunked(ctx, batch, ctl.Call)
		if err != nil {
			return last, xerrors.Errorf("failed to send %d %s records: %w", batch.Len(), ctl.Name, err)
		}
		sc.observe(func(m *Metrics) { m.sent(ctl.Call, n) })
	}
	rc, ah := meter.Consumed(), ahMeter.Consumed()
	sc.observe(func(m *Metrics) { m.consumed(ctl.Name, rc, ah) })

	if cur.Stage >= uint64(len(ctl.Stages)) {
		return nil, nil
	}
	return &cur, nil
}
