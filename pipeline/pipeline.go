// SPDX-License-Identifier: MIT

// Package pipeline drives the assembler end to end: anchor buckets are
// chained by a bounded pool of workers, each query's retained overlaps
// are handed to a single collector that owns arc insertion, and the clean
// read graph is finally contracted into unitigs.
//
// Concurrency:
//   - Workers only read a snapshot of sequence lengths; the graph is
//     written by the collector alone.
//   - A Sink receives every retained overlap from the collector, so it
//     never sees concurrent calls.
//   - Arrival order of queries at the collector is not deterministic; the
//     cleaned graph is, since cleanup sorts and deduplicates.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlasm/arcs"
	"github.com/katalvlaran/lvlasm/chain"
	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/internal/metrics"
	"github.com/katalvlaran/lvlasm/overlap"
	"github.com/katalvlaran/lvlasm/paf"
	"github.com/katalvlaran/lvlasm/unitig"
)

// Sentinel errors for Run.
var (
	ErrGraphNil  = errors.New("pipeline: graph is nil")
	ErrSourceNil = errors.New("pipeline: anchor source is nil")
)

// AnchorSource yields, for each query id in [0, Queries()), its anchor
// buckets grouped by target and strand. Anchors is called concurrently.
type AnchorSource interface {
	Queries() int
	Anchors(ctx context.Context, q uint32) ([]chain.Bucket, error)
}

// Sink receives retained overlaps. Calls are serialized by Run.
type Sink interface {
	Emit(r *overlap.Region) error
}

// Config parameterises Run and Assemble.
type Config struct {
	Threads       int
	Chain         chain.Options
	Registry      []overlap.RegistryOption
	Thresholds    arcs.Thresholds
	RiskyMultiArc bool
	Symmetrize    bool
	Singletons    bool
	Logger        zerolog.Logger
}

// DefaultConfig returns the standard settings for the given number of
// workers.
func DefaultConfig(threads int) Config {
	return Config{
		Threads:       max(threads, 1),
		Chain:         chain.DefaultOptions(),
		Thresholds:    arcs.DefaultThresholds(),
		RiskyMultiArc: true,
		Singletons:    true,
		Logger:        zerolog.Nop(),
	}
}

func (cfg Config) builderOptions() []arcs.Option {
	opts := []arcs.Option{arcs.WithLogger(cfg.Logger)}
	if !cfg.RiskyMultiArc {
		opts = append(opts, arcs.WithoutRiskyMultiArcRemoval())
	}
	if cfg.Symmetrize {
		opts = append(opts, arcs.WithSymmetry())
	}

	return opts
}

type lengths []int

func (l lengths) Length(id uint32) int {
	if int(id) >= len(l) {
		return 0
	}

	return l[id]
}

// Run chains the anchors of every query of src and turns the retained
// overlaps into arcs of g, which must already hold every sequence. sink
// may be nil. On return without error g is clean.
func Run(ctx context.Context, cfg Config, src AnchorSource, g *core.Graph, sink Sink) (arcs.Stats, error) {
	if g == nil {
		return arcs.Stats{}, ErrGraphNil
	}
	if src == nil {
		return arcs.Stats{}, ErrSourceNil
	}
	if err := cfg.Chain.Validate(); err != nil {
		return arcs.Stats{}, fmt.Errorf("pipeline: Run: %w", err)
	}
	b, err := arcs.NewBuilder(g, cfg.Thresholds, cfg.builderOptions()...)
	if err != nil {
		return arcs.Stats{}, fmt.Errorf("pipeline: Run: %w", err)
	}

	lens := lengths(g.Lengths())
	chainers := sync.Pool{New: func() any {
		c, _ := chain.NewChainer(cfg.Chain) // options validated above
		return c
	}}

	results := make(chan []overlap.Region, max(cfg.Threads, 1))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(max(cfg.Threads, 1))

	// collector
	collected := make(chan error, 1)
	go func() {
		var err error
		for regions := range results {
			if err != nil {
				continue
			}
			for i := range regions {
				class := b.Add(regions[i])
				metrics.Arcs.WithLabelValues(class.String()).Inc()
				if sink != nil {
					if err = sink.Emit(&regions[i]); err != nil {
						break
					}
				}
			}
		}
		collected <- err
	}()

	start := time.Now()
	nq := src.Queries()
	for q := 0; q < nq; q++ {
		if ectx.Err() != nil {
			break
		}
		qid := uint32(q)
		eg.Go(func() error {
			buckets, err := src.Anchors(ectx, qid)
			if err != nil {
				return fmt.Errorf("pipeline: Anchors(%d): %w", qid, err)
			}
			if len(buckets) == 0 {
				return nil
			}
			c := chainers.Get().(*chain.Chainer)
			defer chainers.Put(c)

			t := time.Now()
			reg := overlap.NewRegistry(cfg.Registry...)
			chained := c.ChainBuckets(qid, buckets, lens, reg)
			metrics.ChainSeconds.Observe(time.Since(t).Seconds())
			metrics.OverlapsChained.Add(float64(chained))
			metrics.OverlapsRetained.Add(float64(reg.Len()))
			if reg.Len() == 0 {
				return nil
			}
			reg.SortByTarget()

			select {
			case results <- reg.Regions():
				return nil
			case <-ectx.Done():
				return ectx.Err()
			}
		})
	}
	werr := eg.Wait()
	close(results)
	cerr := <-collected

	if werr == nil {
		werr = ctx.Err()
	}
	if werr != nil {
		return arcs.Stats{}, werr
	}
	if cerr != nil {
		return arcs.Stats{}, fmt.Errorf("pipeline: sink: %w", cerr)
	}

	st := b.Finish()
	cfg.Logger.Info().
		Str("queries", humanize.Comma(int64(nq))).
		Str("overlaps", humanize.Comma(int64(st.Overlaps))).
		Dur("elapsed", time.Since(start)).
		Msg("chaining done")

	return st, nil
}

// Assemble runs the pipeline and contracts the resulting read graph.
func Assemble(ctx context.Context, cfg Config, src AnchorSource, g *core.Graph, sink Sink) (*unitig.Result, arcs.Stats, error) {
	st, err := Run(ctx, cfg, src, g, sink)
	if err != nil {
		return nil, st, err
	}
	res, err := Contract(cfg, g)
	if err != nil {
		return nil, st, err
	}

	return res, st, nil
}

// Contract contracts the clean graph g into unitigs.
func Contract(cfg Config, g *core.Graph) (*unitig.Result, error) {
	uopts := []unitig.Option{unitig.WithLogger(cfg.Logger)}
	if !cfg.Singletons {
		uopts = append(uopts, unitig.WithoutSingletons())
	}
	res, err := unitig.Contract(g, uopts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Contract: %w", err)
	}
	for _, u := range res.Unitigs {
		shape := "linear"
		if u.Circular {
			shape = "circular"
		}
		metrics.Unitigs.WithLabelValues(shape).Inc()
	}

	return res, nil
}

// Build feeds already computed overlaps, such as those read from PAF,
// straight to an arc builder and returns the clean graph's stats.
func Build(cfg Config, g *core.Graph, regions []overlap.Region) (arcs.Stats, error) {
	b, err := arcs.NewBuilder(g, cfg.Thresholds, cfg.builderOptions()...)
	if err != nil {
		return arcs.Stats{}, fmt.Errorf("pipeline: Build: %w", err)
	}
	for i := range regions {
		metrics.Arcs.WithLabelValues(b.Add(regions[i]).String()).Inc()
	}

	return b.Finish(), nil
}

// WriterSink writes overlaps as PAF lines. Safe for concurrent use.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
	g  *core.Graph
}

// NewWriterSink returns a Sink writing to w, naming sequences through g.
func NewWriterSink(w io.Writer, g *core.Graph) *WriterSink {
	return &WriterSink{w: w, g: g}
}

// Emit writes r.
func (s *WriterSink) Emit(r *overlap.Region) error {
	q, _ := s.g.Segment(r.XID)
	t, _ := s.g.Segment(r.YID)
	s.mu.Lock()
	defer s.mu.Unlock()

	return paf.WriteRegion(s.w, r, q.Name, q.Len, t.Name, t.Len)
}
