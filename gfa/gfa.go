// SPDX-License-Identifier: MIT

// Package gfa writes read graphs and unitig graphs as GFA1 text.
//
// Read graph:
//
//	L  <read> <+|-> <read> <+|-> <ov>:<ow>  L1:i:<len>  AO:i:<strong>
//
// Unitig graph:
//
//	S  utg000001l <seq|*> LN:i:<len>
//	A  utg000001l <offset> <+|-> <read> 0 <read len>
//	L  utg000001l <+|-> utg000002l <+|-> <ov>M L1:i:<len> AO:i:<strong>
//	x  utg000001l <len> <members> <in> <out> <start read> <+|-> <end read> <+|->
//	x  utg000003c <len> <members>
package gfa

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/unitig"
)

func ori(v core.Vertex) byte { return "+-"[v.Ori&1] }

func b2i(b bool) int {
	if b {
		return 1
	}

	return 0
}

// WriteGraph writes one L line per arc of the clean read graph g.
func WriteGraph(w io.Writer, g *core.Graph) error {
	bw := bufio.NewWriter(w)
	for _, a := range g.AllArcs() {
		if a.Del {
			continue
		}
		v, _ := g.Segment(a.V.ID)
		u, _ := g.Segment(a.W.ID)
		fmt.Fprintf(bw, "L\t%s\t%c\t%s\t%c\t%d:%d\tL1:i:%d\tAO:i:%d\n",
			v.Name, ori(a.V), u.Name, ori(a.W), a.OV, a.OW, a.Len, b2i(a.Strong))
	}

	return bw.Flush()
}

// WriteUnitigs writes S, A, L and x lines for res. reads is the read
// graph res was contracted from and provides member names and lengths.
func WriteUnitigs(w io.Writer, res *unitig.Result, reads *core.Graph) error {
	bw := bufio.NewWriter(w)
	name := func(v core.Vertex) string {
		s, _ := reads.Segment(v.ID)
		return s.Name
	}

	for i := range res.Unitigs {
		u := &res.Unitigs[i]
		un := res.Name(i)
		seq := "*"
		if u.Seq != nil {
			seq = string(u.Seq)
		}
		fmt.Fprintf(bw, "S\t%s\t%s\tLN:i:%d\n", un, seq, u.Len)
		off := 0
		for _, m := range u.Members {
			fmt.Fprintf(bw, "A\t%s\t%d\t%c\t%s\t0\t%d\n", un, off, ori(m.Vertex), name(m.Vertex), reads.Length(m.Vertex.ID))
			off += m.Len
		}
	}

	for _, a := range res.Graph.AllArcs() {
		fmt.Fprintf(bw, "L\t%s\t%c\t%s\t%c\t%dM\tL1:i:%d\tAO:i:%d\n",
			res.Name(int(a.V.ID)), ori(a.V), res.Name(int(a.W.ID)), ori(a.W), a.OV, a.Len, b2i(a.Strong))
	}

	for i := range res.Unitigs {
		u := &res.Unitigs[i]
		if u.Circular {
			fmt.Fprintf(bw, "x\t%s\t%d\t%d\n", res.Name(i), u.Len, len(u.Members))
			continue
		}
		in := res.Graph.OutDegree(core.Vertex{ID: uint32(i), Ori: 1})
		out := res.Graph.OutDegree(core.Vertex{ID: uint32(i)})
		fmt.Fprintf(bw, "x\t%s\t%d\t%d\t%d\t%d\t%s\t%c\t%s\t%c\n",
			res.Name(i), u.Len, len(u.Members), in, out,
			name(u.Start), ori(u.Start), name(u.End), ori(u.End))
	}

	return bw.Flush()
}
