package ipld

import (
	"bytes"
	"context"
	"sync"

	amt "github.com/filecoin-project/go-amt-ipld/v4"
	hamt "github.com/filecoin-project/go-hamt-ipld/v3"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/migration/ahm"
)

const (
	NonceAmtBitwidth  = 5
	TopicHamtBitwidth = 5
)

// Outbox is a destination for outbound messages that keeps every envelope it receives.
// Envelopes are stored as blocks, indexed by nonce and by topic. An envelope sent again with a
// known topic replaces the previous one, as the destination applies each topic once.
type Outbox struct {
	mu          sync.Mutex
	store       ipldcbor.IpldStore
	Blocks      *MetricsBlockStore
	nonces      *amt.Root
	topics      *hamt.Node
	redelivered int
}

var _ ahm.Sender = (*Outbox)(nil)

func NewOutbox() (*Outbox, error) {
	store, bs := NewStore()
	nonces, err := amt.NewAMT(store, amt.UseTreeBitWidth(NonceAmtBitwidth))
	if err != nil {
		return nil, xerrors.Errorf("failed to create nonce index: %w", err)
	}
	topics, err := hamt.NewNode(store, hamt.UseTreeBitWidth(TopicHamtBitwidth))
	if err != nil {
		return nil, xerrors.Errorf("failed to create topic index: %w", err)
	}
	return &Outbox{
		store:  store,
		Blocks: bs,
		nonces: nonces,
		topics: topics,
	}, nil
}

func (o *Outbox) Send(ctx context.Context, env *ahm.Envelope) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	c, err := o.store.Put(ctx, env)
	if err != nil {
		return xerrors.Errorf("failed to store message %d: %w", env.Nonce, err)
	}
	var prev cbg.CborCid
	found, err := o.topics.Find(ctx, string(env.Topic), &prev)
	if err != nil {
		return xerrors.Errorf("failed to look up topic of message %d: %w", env.Nonce, err)
	}
	if found {
		o.redelivered++
	}
	ref := cbg.CborCid(c)
	if err := o.topics.Set(ctx, string(env.Topic), &ref); err != nil {
		return xerrors.Errorf("failed to index topic of message %d: %w", env.Nonce, err)
	}
	if err := o.nonces.Set(ctx, env.Nonce, &ref); err != nil {
		return xerrors.Errorf("failed to index message %d: %w", env.Nonce, err)
	}
	return nil
}

// HasTopic reports whether a message with the topic was delivered.
func (o *Outbox) HasTopic(ctx context.Context, topic []byte) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var ref cbg.CborCid
	return o.topics.Find(ctx, string(topic), &ref)
}

// Redelivered is the number of messages received with a topic seen before.
func (o *Outbox) Redelivered() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.redelivered
}

// Len is the number of distinct nonces delivered.
func (o *Outbox) Len() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.nonces.Len()
}

func (o *Outbox) Envelope(ctx context.Context, nonce uint64) (*ahm.Envelope, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var ref cbg.CborCid
	found, err := o.nonces.Get(ctx, nonce, &ref)
	if err != nil || !found {
		return nil, found, err
	}
	env, err := o.load(ctx, cid.Cid(ref))
	if err != nil {
		return nil, false, err
	}
	return env, true, nil
}

// Envelopes returns the delivered messages in nonce order.
func (o *Outbox) Envelopes(ctx context.Context) ([]*ahm.Envelope, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []*ahm.Envelope
	err := o.nonces.ForEach(ctx, func(nonce uint64, d *cbg.Deferred) error {
		var ref cbg.CborCid
		if err := ref.UnmarshalCBOR(bytes.NewReader(d.Raw)); err != nil {
			return xerrors.Errorf("invalid index entry for message %d: %w", nonce, err)
		}
		env, err := o.load(ctx, cid.Cid(ref))
		if err != nil {
			return err
		}
		out = append(out, env)
		return nil
	})
	return out, err
}

// Flush persists both indexes, returning their roots.
func (o *Outbox) Flush(ctx context.Context) (nonceRoot, topicRoot cid.Cid, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if nonceRoot, err = o.nonces.Flush(ctx); err != nil {
		return cid.Undef, cid.Undef, err
	}
	if err = o.topics.Flush(ctx); err != nil {
		return cid.Undef, cid.Undef, err
	}
	topicRoot, err = o.store.Put(ctx, o.topics)
	return nonceRoot, topicRoot, err
}

func (o *Outbox) load(ctx context.Context, c cid.Cid) (*ahm.Envelope, error) {
	var env ahm.Envelope
	if err := o.store.Get(ctx, c, &env); err != nil {
		return nil, xerrors.Errorf("failed to load message %s: %w", c, err)
	}
	return &env, nil
}
