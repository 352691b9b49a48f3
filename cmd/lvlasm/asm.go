// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvlasm/bfs"
	"github.com/katalvlaran/lvlasm/config"
	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/gfa"
	"github.com/katalvlaran/lvlasm/internal/logging"
	"github.com/katalvlaran/lvlasm/paf"
	"github.com/katalvlaran/lvlasm/pipeline"
	"github.com/katalvlaran/lvlasm/unitig"
)

var readsHelp = `FASTA/FASTQ file (optionally compressed) with the read sequences.
Unitig sequences are written to the S lines when given, '*' otherwise.`

// asmFlags are the flags of asm that are not configuration keys.
type asmFlags struct {
	out         string
	reads       string
	printGraph  bool
	metricsAddr string
}

func newAsmCmd(v *viper.Viper) *cobra.Command {
	var f asmFlags
	cmd := &cobra.Command{
		Use:   "asm [flags] <overlaps.paf>",
		Short: "Build the read graph and unitigs from PAF overlaps",
		Long: `Read pairwise overlaps in PAF (plain, gzip or zstd; '-' for stdin),
classify them into dovetail arcs, drop contained reads and write either the
unitig graph or, with --print-graph, the read graph as GFA.`,
		Args:                       cobra.ExactArgs(1),
		SuggestionsMinimumDistance: 2,
		Aliases:                    []string{"assemble"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.New(v)
			if err != nil {
				return err
			}
			log, err := c.Logger()
			if err != nil {
				return err
			}
			return runAsm(cmd.Context(), c, logging.Component(log, "asm"), f, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file name (default stdout)")
	cmd.Flags().StringVarP(&f.reads, "reads", "r", "", readsHelp)
	cmd.Flags().BoolVar(&f.printGraph, "print-graph", false, "write the read graph instead of unitigs")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	cmd.Flags().Int("max-hang", 0, "longest tolerated unaligned overhang")
	cmd.Flags().Float64("int-frac", 0, "min aligned fraction of the overhang-extended span")
	cmd.Flags().Int("min-overlap", 0, "shortest accepted dovetail")
	cmd.Flags().Bool("symmetrize", false, "add missing complement arcs")
	cmd.Flags().Bool("risky-multi-arc", true, "keep only the largest overlap between two oriented reads")
	cmd.Flags().Bool("singletons", true, "emit reads without arcs as one-member unitigs")
	for key, flag := range map[string]string{
		"graph.max-hang":        "max-hang",
		"graph.int-frac":        "int-frac",
		"graph.min-overlap":     "min-overlap",
		"graph.symmetrize":      "symmetrize",
		"graph.risky-multi-arc": "risky-multi-arc",
		"graph.singletons":      "singletons",
	} {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}

	return cmd
}

func runAsm(ctx context.Context, c config.Config, log zerolog.Logger, f asmFlags, input string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.metricsAddr != "" {
		srv := serveMetrics(f.metricsAddr, log)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	start := time.Now()
	rc, err := paf.Open(input)
	if err != nil {
		return err
	}
	g := core.NewGraph()
	regions, err := paf.Load(paf.NewReader(rc), g)
	rc.Close()
	if err != nil {
		return err
	}
	log.Info().
		Str("overlaps", humanize.Comma(int64(len(regions)))).
		Str("reads", humanize.Comma(int64(g.NumSegments()))).
		Msg("overlaps loaded")

	pcfg := c.Pipeline(log)
	if _, err = pipeline.Build(pcfg, g, regions); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	w := stdout
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", f.out, err)
		}
		defer file.Close()
		w = file
	}

	if f.printGraph {
		return gfa.WriteGraph(w, g)
	}

	res, err := pipeline.Contract(pcfg, g)
	if err != nil {
		return err
	}
	if f.reads != "" {
		if err = unitig.BuildSequencesFromFile(res, unitig.SegmentNames(g), f.reads); err != nil {
			return err
		}
	}
	if err = gfa.WriteUnitigs(w, res, g); err != nil {
		return err
	}
	comps, err := bfs.Components(res.Graph)
	if err != nil {
		return err
	}
	log.Info().
		Str("unitigs", humanize.Comma(int64(len(res.Unitigs)))).
		Int("components", len(comps)).
		Dur("elapsed", time.Since(start)).
		Msg("assembly written")

	return nil
}

func serveMetrics(addr string, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")

	return srv
}
