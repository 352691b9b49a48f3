// SPDX-License-Identifier: MIT

package unitig

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/katalvlaran/lvlasm/core"
)

// ErrOpenSource is returned when a sequence stream cannot be opened.
var ErrOpenSource = errors.New("unitig: cannot open sequence source")

// SequenceSource streams named sequences. Next returns io.EOF after the
// last record. Returned slices are valid until the following call.
type SequenceSource interface {
	Next() (name, seq []byte, err error)
}

// FastxSource reads FASTA/FASTQ, plain or compressed, from a file or "-".
type FastxSource struct {
	r *fastx.Reader
}

// OpenFastx opens path as a sequence source.
func OpenFastx(path string) (*FastxSource, error) {
	r, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenSource, path, err)
	}

	return &FastxSource{r: r}, nil
}

// Next returns the id and bases of the next record.
func (s *FastxSource) Next() ([]byte, []byte, error) {
	rec, err := s.r.Read()
	if err != nil {
		return nil, nil, err
	}

	return rec.ID, rec.Seq.Seq, nil
}

// Close releases the underlying file.
func (s *FastxSource) Close() error {
	s.r.Close()
	return nil
}

// SegmentNames maps segment ids of g to their names.
func SegmentNames(g *core.Graph) func(uint32) string {
	return func(id uint32) string {
		s, _ := g.Segment(id)
		return s.Name
	}
}

type interval struct {
	utg   int
	ori   uint8
	start int
	len   int
}

// BuildSequences fills Seq of every unitig in res from src. names maps a
// member's segment id to the record name it is read from. Positions not
// covered by any record stay 'N'; records that belong to no unitig are
// skipped. A sequence claimed by two members is a corrupt result and
// panics.
func BuildSequences(res *Result, names func(uint32) string, src SequenceSource) error {
	table := make(map[string]interval)
	for i := range res.Unitigs {
		u := &res.Unitigs[i]
		u.Seq = bytes.Repeat([]byte{'N'}, u.Len)
		off := 0
		for _, m := range u.Members {
			name := names(m.Vertex.ID)
			if _, dup := table[name]; dup {
				panic(fmt.Sprintf("unitig: sequence %q claimed by two unitig members", name))
			}
			table[name] = interval{utg: i, ori: m.Vertex.Ori, start: off, len: m.Len}
			off += m.Len
		}
	}

	for {
		name, seq, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("BuildSequences: %w", err)
		}
		t, ok := table[string(name)]
		if !ok {
			continue
		}
		dst := res.Unitigs[t.utg].Seq[t.start : t.start+t.len]
		n := min(t.len, len(seq))
		if t.ori == 0 {
			copy(dst[:n], seq[:n])
			continue
		}
		for i := 0; i < n; i++ {
			dst[i] = complement[seq[len(seq)-1-i]]
		}
	}
}

// BuildSequencesFromFile opens path with OpenFastx and runs BuildSequences.
func BuildSequencesFromFile(res *Result, names func(uint32) string, path string) error {
	src, err := OpenFastx(path)
	if err != nil {
		return err
	}
	defer src.Close()

	return BuildSequences(res, names, src)
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[len(seq)-1-i] = complement[c]
	}

	return out
}

// complement maps IUPAC codes to their complements, keeps other ASCII
// and turns bytes >= 128 into 'N'.
var complement = func() (t [256]byte) {
	for i := range t {
		if i < 128 {
			t[i] = byte(i)
		} else {
			t[i] = 'N'
		}
	}
	for _, p := range []string{"AT", "CG", "MK", "RY", "WW", "SS", "VB", "HD", "NN"} {
		a, b := p[0], p[1]
		t[a], t[b] = b, a
		la, lb := a|0x20, b|0x20
		t[la], t[lb] = lb, la
	}
	t['U'], t['u'] = 'A', 'a'

	return t
}()
