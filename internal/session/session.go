// Package session resolves the concurrency decision for one invocation and
// composes the collection stages that apply to it.
//
// Stages are chosen once, up front, from the resolved Decision. Nothing is
// registered globally; the Session value is passed to whoever needs it.
package session

import (
	"github.com/bityantriki/autoconc/internal/concurrency"
	"github.com/bityantriki/autoconc/internal/grouping"
	"github.com/bityantriki/autoconc/internal/output"
)

// Stage transforms the list of collected test IDs.
type Stage interface {
	Name() string
	Apply(ids []string) []string
}

// Options configures Plan.
type Options struct {
	CPUCount concurrency.CPUCounter
	Notifier output.Notifier
}

// Session is the resolved state of one invocation.
type Session struct {
	// Args is the rewritten argument list for the host runner.
	Args []string
	// Decision is nil when --concurrency was absent.
	Decision *concurrency.Decision

	stages []Stage
}

// Plan rewrites args and builds the active collection stages. When
// --concurrency is absent the arguments pass through unchanged, except that
// stray concurrency flags are dropped with a warning.
func Plan(args []string, opts Options) (*Session, error) {
	rw := &concurrency.Rewriter{CPUCount: opts.CPUCount, Notifier: opts.Notifier}
	res, err := rw.Rewrite(args)
	if err != nil {
		return nil, err
	}

	s := &Session{Args: res.Args, Decision: res.Decision}
	if res.Decision == nil {
		s.Args = dropStrayFlags(res.Args, opts.Notifier)
	}
	if wantsGrouping(res.Decision) {
		s.stages = append(s.stages, &groupStage{decision: *res.Decision, notifier: opts.Notifier})
	}
	for _, st := range s.stages {
		output.OrDiscard(opts.Notifier).Infof("Collection stage enabled: %s", st.Name())
	}
	return s, nil
}

// dropStrayFlags removes custom flags given without --concurrency. The host
// runner does not know them and would reject the command line.
func dropStrayFlags(args []string, notifier output.Notifier) []string {
	stripped := concurrency.StripFlags(args)
	if len(stripped) != len(args) {
		output.OrDiscard(notifier).Warnf("Ignoring concurrency flags without %s", concurrency.FlagConcurrency)
	}
	return stripped
}

// wantsGrouping is the part of grouping.Active that does not depend on the
// collected items.
func wantsGrouping(d *concurrency.Decision) bool {
	return d != nil && d.Strategy == concurrency.Threading && d.Grouping != concurrency.GroupingNone
}

// NeedsCollection reports whether any stage needs the collected test IDs.
func (s *Session) NeedsCollection() bool {
	return len(s.stages) > 0
}

// ModifyItems runs every active stage over ids.
func (s *Session) ModifyItems(ids []string) []string {
	for _, stage := range s.stages {
		ids = stage.Apply(ids)
	}
	return ids
}

type groupStage struct {
	decision concurrency.Decision
	notifier output.Notifier
}

func (g *groupStage) Name() string {
	return "group-by-" + string(g.decision.Grouping)
}

func (g *groupStage) Apply(ids []string) []string {
	return grouping.Apply(&g.decision, ids, g.notifier)
}
