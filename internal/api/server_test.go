package api

import (
	"testing"

	"github.com/samcharles93/ttmc/internal/csf"
	"github.com/samcharles93/ttmc/internal/synth"
)

func TestParseScheme(t *testing.T) {
	cases := map[string]csf.AllocScheme{
		"":        csf.OneMode,
		"onemode": csf.OneMode,
		"TWOMODE": csf.TwoMode,
		"AllMode": csf.AllMode,
	}
	for in, want := range cases {
		got, err := parseScheme(in)
		if err != nil {
			t.Fatalf("parseScheme(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("parseScheme(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := parseScheme("bogus"); err == nil {
		t.Fatal("parseScheme(\"bogus\") should return an error")
	}
}

func TestRotate(t *testing.T) {
	natural := []int{0, 1, 2, 3}
	got := rotate(natural, 2)
	want := []int{2, 3, 0, 1}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("rotate()[%d] = %d, want %d", i, got[i], v)
		}
	}
}

func TestBuildSetSchemes(t *testing.T) {
	spec := synth.Spec{Dims: []int{3, 4, 5}, NNZ: 20, Seed: 1}
	coord := synth.GenerateCoord(spec)

	one := buildSet(coord, csf.OneMode)
	if len(one.Tensors) != 1 {
		t.Fatalf("ONEMODE: got %d trees, want 1", len(one.Tensors))
	}

	two := buildSet(coord, csf.TwoMode)
	if len(two.Tensors) != 2 {
		t.Fatalf("TWOMODE: got %d trees, want 2", len(two.Tensors))
	}

	all := buildSet(coord, csf.AllMode)
	if len(all.Tensors) != 3 {
		t.Fatalf("ALLMODE: got %d trees, want 3", len(all.Tensors))
	}
	for m, tr := range all.Tensors {
		if tr.DimPerm[0] != m {
			t.Fatalf("ALLMODE tree %d has root mode %d, want %d", m, tr.DimPerm[0], m)
		}
	}
}
