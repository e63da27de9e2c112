package main

import (
	"io"
	"sort"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ahm-project/migrator/actors/migration/ahm"
)

type report struct {
	RunID       string
	Steps       int
	IssuanceIn  abi.TokenAmount
	IssuanceOut abi.TokenAmount
	Migrated    abi.TokenAmount
	Accounts    int
	Staking     int
	Messages    uint64
	Redelivered int
	LastTopic   []byte
	NonceRoot   cid.Cid
	TopicRoot   cid.Cid
	Skipped     map[string]int
	Violations  int
}

func writeReport(w io.Writer, r *report) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "run:         %s\n", r.RunID)
	p.Fprintf(w, "steps:       %d\n", r.Steps)
	p.Fprintf(w, "issuance:    %s -> %s\n", tokens(p, r.IssuanceIn), tokens(p, r.IssuanceOut))
	p.Fprintf(w, "migrated:    %s\n", tokens(p, r.Migrated))
	p.Fprintf(w, "accounts:    %d records\n", r.Accounts)
	p.Fprintf(w, "staking:     %d messages\n", r.Staking)
	p.Fprintf(w, "messages:    %d (%d redelivered)\n", r.Messages, r.Redelivered)
	if r.LastTopic != nil {
		p.Fprintf(w, "last topic:  %s\n", ahm.TopicString(r.LastTopic))
	}
	p.Fprintf(w, "outbox:      nonces %s, topics %s\n", r.NonceRoot, r.TopicRoot)

	stages := make([]string, 0, len(r.Skipped))
	for s := range r.Skipped {
		stages = append(stages, s)
	}
	sort.Strings(stages)
	for _, s := range stages {
		p.Fprintf(w, "skipped:     %d in %s\n", r.Skipped[s], s)
	}
	if r.Violations == 0 {
		p.Fprintf(w, "post-check:  ok\n")
	} else {
		p.Fprintf(w, "post-check:  %d violations\n", r.Violations)
	}
}

// tokens groups the digits of amounts small enough to print as integers.
func tokens(p *message.Printer, amount abi.TokenAmount) string {
	if amount.Nil() {
		return "-"
	}
	if amount.Int.IsInt64() {
		return p.Sprintf("%d", amount.Int.Int64())
	}
	return amount.String()
}
