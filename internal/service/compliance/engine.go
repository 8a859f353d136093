package compliance

import (
	"context"
	"runtime"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
	"github.com/madwell/signin-backend-go/internal/domain/signin"
	"golang.org/x/sync/errgroup"
)

// Batch is everything one reconciliation run needs, already materialized in memory.
type Batch struct {
	Roster   []roster.Entry
	SignIns  []signin.Record
	Week     compliance.WeekWindow
	Calendar []pto.Record
}

type Result struct {
	Records   []compliance.Record
	Unmatched []compliance.Unmatched
}

// Engine applies the aggregator over a whole roster. It holds no per-batch state.
type Engine struct {
	workers int
	policy  compliance.UnmatchedPolicy
}

func NewEngine(workers int, policy compliance.UnmatchedPolicy) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if policy == "" {
		policy = compliance.UnmatchedIgnore
	}
	return &Engine{workers: workers, policy: policy}
}

// Process returns one record per roster entry with a positive requirement, in roster order.
// Entries are aggregated concurrently; the output is identical for identical input.
func (e *Engine) Process(ctx context.Context, b Batch) (Result, error) {
	idx := newNameIndex(b.Roster, b.SignIns, b.Calendar)
	slots := make([]*compliance.Record, len(b.Roster))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, entry := range b.Roster {
		// Exempt employees never appear, not even as passing rows.
		if entry.RequiredDays <= 0 {
			continue
		}
		i, entry := i, entry
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rec := idx.aggregate(entry, b.Week)
			slots[i] = &rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Records: make([]compliance.Record, 0, len(slots))}
	for _, rec := range slots {
		if rec != nil {
			res.Records = append(res.Records, *rec)
		}
	}

	if e.policy == compliance.UnmatchedReport {
		res.Unmatched = idx.unmatched()
	}

	return res, nil
}
