package ttmc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samcharles93/ttmc/internal/csf"
	"github.com/samcharles93/ttmc/internal/logger"
	"github.com/samcharles93/ttmc/internal/synth"
)

func buildSetAndFactors(t *testing.T) (*Set, []*Mat, synth.Spec) {
	t.Helper()
	spec := synth.Spec{Dims: []int{4, 5, 6}, NNZ: 30, Seed: 13, Cols: []int{2, 3, 4}}
	coord := synth.GenerateCoord(spec)
	tree := synth.BuildCSF(coord, []int{0, 1, 2})
	set := &Set{Scheme: csf.OneMode, Tensors: []*csf.Tensor{tree}}

	data := synth.GenerateFactors(spec)
	factors := make([]*Mat, len(data))
	for m, d := range data {
		factors[m] = NewMatFromData(spec.Dims[m], len(d)/spec.Dims[m], d)
	}
	return set, factors, spec
}

func testOptions() Options {
	return Options{NThreads: 2, CSFAlloc: csf.OneMode}
}

func TestTtmcProducesExpectedShape(t *testing.T) {
	set, factors, spec := buildSetAndFactors(t)
	out, err := Ttmc(logger.Default(), set, factors, 1, testOptions())
	if err != nil {
		t.Fatalf("Ttmc: %v", err)
	}
	wantCols := TenoutCols(factors, 1)
	if out.Rows != spec.Dims[1] || out.Cols != wantCols {
		t.Fatalf("Ttmc output shape = %dx%d, want %dx%d", out.Rows, out.Cols, spec.Dims[1], wantCols)
	}
}

func TestTtmcStreamAgreesWithTtmc(t *testing.T) {
	set, factors, spec := buildSetAndFactors(t)
	coord := synth.GenerateCoord(synth.Spec{Dims: spec.Dims, NNZ: spec.NNZ, Seed: spec.Seed, Cols: spec.Cols})

	fromTree, err := Ttmc(logger.Default(), set, factors, 0, testOptions())
	if err != nil {
		t.Fatalf("Ttmc: %v", err)
	}
	fromCoord, err := TtmcStream(coord, factors, 0, testOptions())
	if err != nil {
		t.Fatalf("TtmcStream: %v", err)
	}
	if fromTree.Rows != fromCoord.Rows || fromTree.Cols != fromCoord.Cols {
		t.Fatalf("shape mismatch: tree %dx%d vs coord %dx%d", fromTree.Rows, fromTree.Cols, fromCoord.Rows, fromCoord.Cols)
	}
	for i := range fromTree.Data {
		if diff := fromTree.Data[i] - fromCoord.Data[i]; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("Data[%d]: tree=%v coord=%v", i, fromTree.Data[i], fromCoord.Data[i])
		}
	}
}

func TestTenoutColsExcludesOutputMode(t *testing.T) {
	factors := []*Mat{NewMat(3, 2), NewMat(4, 5), NewMat(6, 7)}
	if got, want := TenoutCols(factors, 1), 2*7; got != want {
		t.Fatalf("TenoutCols(mode=1) = %d, want %d", got, want)
	}
}

// TestTenoutDimIsUpperBoundOverAllModes checks TenoutDim returns the max
// over every mode of dims[m] * TenoutCols(m), an upper bound on Y's
// storage regardless of which mode is actually computed.
func TestTenoutDimIsUpperBoundOverAllModes(t *testing.T) {
	factors := []*Mat{NewMat(3, 2), NewMat(4, 5), NewMat(6, 7)}
	dims := []int{3, 4, 6}

	want := 0
	for m, d := range dims {
		if size := d * TenoutCols(factors, m); size > want {
			want = size
		}
	}
	if got := TenoutDim(factors, dims); got != want {
		t.Fatalf("TenoutDim() = %d, want %d", got, want)
	}

	for m, d := range dims {
		if size := d * TenoutCols(factors, m); size > TenoutDim(factors, dims) {
			t.Fatalf("TenoutDim() = %d is not an upper bound for mode %d's own size %d", TenoutDim(factors, dims), m, size)
		}
	}
}

// TestTtmcLargestOuterTracksFiberSpans checks that TtmcLargestOuter
// reports the widest fiber span at the non-leaf levels of set, per
// mode, rather than any factor column width.
func TestTtmcLargestOuterTracksFiberSpans(t *testing.T) {
	set, _, _ := buildSetAndFactors(t)
	tree := set.Tensors[0]

	wantMode0 := 0
	lvl1 := tree.Levels[1]
	for f := 0; f+1 < len(lvl1.FPtr); f++ {
		if span := lvl1.FPtr[f+1] - lvl1.FPtr[f]; span > wantMode0 {
			wantMode0 = span
		}
	}

	outerSizes := TtmcLargestOuter(set)
	if outerSizes[tree.DimPerm[0]] != wantMode0 {
		t.Fatalf("TtmcLargestOuter()[%d] = %d, want %d", tree.DimPerm[0], outerSizes[tree.DimPerm[0]], wantMode0)
	}
	if got, want := len(outerSizes), tree.NModes(); got != want {
		t.Fatalf("len(TtmcLargestOuter()) = %d, want %d", got, want)
	}
}

func TestFillFlopTableAndWriteFlopTable(t *testing.T) {
	_, factors, spec := buildSetAndFactors(t)
	coord := synth.GenerateCoord(synth.Spec{Dims: spec.Dims, NNZ: spec.NNZ, Seed: spec.Seed, Cols: spec.Cols})
	nfactors := make([]int, len(factors))
	for m, f := range factors {
		nfactors[m] = f.Cols
	}

	table := FillFlopTable(coord, nfactors)
	if len(table.Table) != 3 {
		t.Fatalf("len(table.Table) = %d, want 3", len(table.Table))
	}
	for i, row := range table.Table {
		if len(row) != 3 {
			t.Fatalf("len(table.Table[%d]) = %d, want 3", i, len(row))
		}
	}

	for j := 0; j < 3; j++ {
		best := table.Table[0][j]
		for i := 1; i < 3; i++ {
			if table.Table[i][j] < best {
				best = table.Table[i][j]
			}
		}
		if table.Custom[j] != best {
			t.Fatalf("table.Custom[%d] = %v, want per-mode minimum %v", j, table.Custom[j], best)
		}
	}

	for m, f := range table.Coord {
		if f <= 0 {
			t.Fatalf("table.Coord[%d] = %v, want > 0 for a nonempty tensor", m, f)
		}
	}

	var buf bytes.Buffer
	if err := WriteFlopTable(&buf, table); err != nil {
		t.Fatalf("WriteFlopTable: %v", err)
	}
	if !strings.Contains(buf.String(), "\"Custom\"") {
		t.Fatalf("WriteFlopTable output missing expected field: %s", buf.String())
	}
}
