// SPDX-License-Identifier: MIT

// Package paf reads and writes pairwise overlaps in the PAF text format
// and converts them to overlap regions.
//
// Only the twelve mandatory columns are interpreted; optional SAM-like
// tags are ignored. Inputs may be plain, gzip or zstd compressed.
package paf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/overlap"
)

// ErrFormat indicates a line that is not a valid PAF record.
var ErrFormat = errors.New("paf: malformed record")

const minColumns = 12

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Record is one PAF line. Coordinates are 0-based, ends exclusive, target
// coordinates always on the forward strand.
type Record struct {
	QName        string
	QLen         int
	QStart, QEnd int
	Rev          bool
	TName        string
	TLen         int
	TStart, TEnd int
	Matches      int
	BlockLen     int
	MapQ         int
}

// Region converts rec into an overlap region between qid and tid.
// Reverse-strand target coordinates are moved onto the reverse strand.
func (rec Record) Region(qid, tid uint32) overlap.Region {
	r := overlap.Region{
		XID: qid, YID: tid,
		XStart: rec.QStart, XEnd: rec.QEnd - 1,
		YStart: rec.TStart, YEnd: rec.TEnd - 1,
		SharedSeed: rec.Matches,
		OverlapLen: rec.BlockLen,
	}
	if rec.Rev {
		r.YStrand = 1
		r.YStart, r.YEnd = rec.TLen-rec.TEnd, rec.TLen-rec.TStart-1
	}

	return r
}

// Swap exchanges query and target. The strand is kept.
func (rec Record) Swap() Record {
	return Record{
		QName: rec.TName, QLen: rec.TLen, QStart: rec.TStart, QEnd: rec.TEnd,
		Rev:   rec.Rev,
		TName: rec.QName, TLen: rec.QLen, TStart: rec.QStart, TEnd: rec.QEnd,
		Matches: rec.Matches, BlockLen: rec.BlockLen, MapQ: rec.MapQ,
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// Open opens path, or stdin for "-", and transparently decompresses
// gzip and zstd input.
func Open(path string) (io.ReadCloser, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("paf: Open(%s): %w", path, err)
		}
	}
	br := bufio.NewReaderSize(f, 1<<16)
	magic, _ := br.Peek(4)

	switch {
	case len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("paf: Open(%s): gzip: %w", path, err)
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return f.Close()
		}}, nil
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("paf: Open(%s): zstd: %w", path, err)
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return f.Close()
		}}, nil
	}

	return readCloser{Reader: br, close: f.Close}, nil
}

// Reader parses PAF records line by line.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<26)

	return &Reader{sc: sc}
}

// Read returns the next record, or io.EOF. Blank lines and lines
// starting with '#' are skipped.
func (r *Reader) Read() (Record, error) {
	for r.sc.Scan() {
		r.line++
		line := r.sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		rec, err := parse(line)
		if err != nil {
			return Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, err
	}

	return Record{}, io.EOF
}

func parse(line string) (Record, error) {
	f := strings.Split(line, "\t")
	if len(f) < minColumns {
		return Record{}, fmt.Errorf("%w: %d columns", ErrFormat, len(f))
	}
	var ints [9]int
	for i, col := range []int{1, 2, 3, 6, 7, 8, 9, 10, 11} {
		v, err := strconv.Atoi(f[col])
		if err != nil || v < 0 {
			return Record{}, fmt.Errorf("%w: column %d %q", ErrFormat, col+1, f[col])
		}
		ints[i] = v
	}
	if f[4] != "+" && f[4] != "-" {
		return Record{}, fmt.Errorf("%w: strand %q", ErrFormat, f[4])
	}
	rec := Record{
		QName: f[0], QLen: ints[0], QStart: ints[1], QEnd: ints[2],
		Rev:   f[4] == "-",
		TName: f[5], TLen: ints[3], TStart: ints[4], TEnd: ints[5],
		Matches: ints[6], BlockLen: ints[7], MapQ: ints[8],
	}
	if rec.QStart >= rec.QEnd || rec.QEnd > rec.QLen || rec.TStart >= rec.TEnd || rec.TEnd > rec.TLen {
		return Record{}, fmt.Errorf("%w: coordinates out of range", ErrFormat)
	}

	return rec, nil
}

// Load registers every sequence named in r with g and returns the
// overlaps as regions, in input order. Each record between two different
// sequences yields a second region seen from the target, so one-sided
// all-vs-all output classifies every pair from both ends. Records already
// present in both directions produce identical arcs, which Cleanup
// collapses.
func Load(r *Reader, g *core.Graph) ([]overlap.Region, error) {
	var out []overlap.Region
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("paf: Load: %w", err)
		}
		qid, err := g.AddSegment(rec.QName, rec.QLen)
		if err != nil {
			return nil, fmt.Errorf("paf: Load: %w", err)
		}
		tid, err := g.AddSegment(rec.TName, rec.TLen)
		if err != nil {
			return nil, fmt.Errorf("paf: Load: %w", err)
		}
		out = append(out, rec.Region(qid, tid))
		if qid != tid {
			out = append(out, rec.Swap().Region(tid, qid))
		}
	}
}

// WriteRegion writes r as one PAF line. Column 10 carries the chain
// score and column 11 the implied overlap length.
func WriteRegion(w io.Writer, r *overlap.Region, qName string, qLen int, tName string, tLen int) error {
	c := *r
	if c.XStrand == 1 {
		c.Trace = nil
		overlap.Reflect(&c, qLen, tLen)
	}
	ts, te := c.YStart, c.YEnd+1
	strand := '+'
	if c.YStrand == 1 {
		strand = '-'
		ts, te = tLen-c.YEnd-1, tLen-c.YStart
	}
	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%c\t%s\t%d\t%d\t%d\t%d\t%d\t255\n",
		qName, qLen, c.XStart, c.XEnd+1, strand, tName, tLen, ts, te, c.SharedSeed, c.OverlapLen)

	return err
}
