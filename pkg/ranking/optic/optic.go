// Package optic translates declarative boost/downrank rules into scored
// docsets against a segment, and combines the active rules matching a
// document into a single multiplicative boost factor. The optic DSL
// itself — parsing a rule's textual filter into a Matcher — is out of
// scope; this package consumes already-parsed rules.
package optic

import (
	"log/slog"

	"github.com/google/uuid"
)

// ActionKind is the effect a Rule has on a matching document.
type ActionKind int

const (
	// ActionBoost increases a matching document's score.
	ActionBoost ActionKind = iota
	// ActionDownrank decreases a matching document's score.
	ActionDownrank
	// ActionDiscard removes a matching document from candidate selection
	// entirely. Enforced at the candidate-selection layer above this
	// package; BindRules filters Discard rules out and never binds them.
	ActionDiscard
)

// Action pairs an ActionKind with its magnitude.
type Action struct {
	Kind      ActionKind
	Magnitude float64
}

// Boost returns a positive boost action.
func Boost(magnitude float64) Action { return Action{Kind: ActionBoost, Magnitude: magnitude} }

// Downrank returns a downrank action.
func Downrank(magnitude float64) Action { return Action{Kind: ActionDownrank, Magnitude: magnitude} }

// Discard returns a discard action.
func Discard() Action { return Action{Kind: ActionDiscard} }

// signedBoost returns the action's contribution to boosts() — positive for
// Boost, negative for Downrank, zero for Discard (which never binds).
func (a Action) signedBoost() float64 {
	switch a.Kind {
	case ActionBoost:
		return a.Magnitude
	case ActionDownrank:
		return -a.Magnitude
	default:
		return 0
	}
}

// DocSet is a searchable iterator over the ascending doc ids a rule's
// matcher selects within a segment. Compiled from a Matcher against a
// CompileContext; out of scope for this core beyond the interface.
type DocSet interface {
	// Doc returns the current doc id.
	Doc() uint32
	// Seek advances to the first doc id >= target and returns it.
	Seek(target uint32) uint32
	// Exhausted reports whether the docset has no more doc ids.
	Exhausted() bool
}

// Matcher is an opaque predicate over documents, already parsed from the
// optic DSL. Compile turns it into a segment-scoped DocSet.
type Matcher interface {
	Compile(ctx CompileContext) (DocSet, error)
}

// CompileContext is the segment-scoped state a Matcher needs to compile
// into a DocSet (schema, field readers, and similar index handles).
type CompileContext interface {
	SegmentID() string
}

// Rule is a declarative boost/downrank filter parsed from the optic DSL.
type Rule struct {
	ID      uuid.UUID
	Matcher Matcher
	Action  Action
}

// active reports whether r can ever contribute to boosts(): not a Discard,
// and not a zero-magnitude boost/downrank.
func (r Rule) active() bool {
	if r.Action.Kind == ActionDiscard {
		return false
	}
	return r.Action.Magnitude != 0
}

// RuleBoost is one rule bound against a segment: its compiled docset paired
// with the signed boost magnitude it contributes when the docset's current
// doc matches.
type RuleBoost struct {
	RuleID uuid.UUID
	DocSet DocSet
	Signed float64
}

// BindRules filters inactive rules, compiles each survivor's
// matcher against ctx, and swallows compile failures with a structured log
// event rather than failing the whole bind — a broken rule during schema
// evolution must not take down ranking for every other rule.
func BindRules(rules []Rule, ctx CompileContext, logger *slog.Logger) []RuleBoost {
	if logger == nil {
		logger = slog.Default()
	}

	bound := make([]RuleBoost, 0, len(rules))
	for _, r := range rules {
		if !r.active() {
			continue
		}

		docset, err := r.Matcher.Compile(ctx)
		if err != nil {
			logger.Warn("optic rule compile failed, dropping rule",
				slog.String("rule_id", r.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		bound = append(bound, RuleBoost{
			RuleID: r.ID,
			DocSet: docset,
			Signed: r.Action.signedBoost(),
		})
	}
	return bound
}

// Boosts advances every bound
// rule's docset to doc (never seeking backwards — the ascending-doc
// invariant), sums matching positive and negative contributions, and
// returns the multiplicative factor described in the design notes:
//
//	up   = sum of positive boosts on matching rules
//	down = sum of |downrank| on matching rules
//	down > up  => 1 / (1 + (down - up))   (in (0, 1])
//	otherwise  => (up - down) + 1          (>= 1)
//
// The result is continuous at up = down = 0 (multiplier 1) and always
// strictly positive.
func Boosts(doc uint32, bound []RuleBoost) float64 {
	var up, down float64
	for _, rb := range bound {
		if rb.DocSet.Exhausted() {
			continue
		}
		if rb.DocSet.Doc() < doc {
			rb.DocSet.Seek(doc)
		}
		if rb.DocSet.Exhausted() || rb.DocSet.Doc() != doc {
			continue
		}

		if rb.Signed > 0 {
			up += rb.Signed
		} else {
			down += -rb.Signed
		}
	}

	if down > up {
		return 1 / (1 + (down - up))
	}
	return (up - down) + 1
}
