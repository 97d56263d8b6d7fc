package kernel

import "testing"

func TestOuterOverwritesFully(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{3, 4, 5}
	dst := make([]float64, len(a)*len(b))
	for i := range dst {
		dst[i] = 99
	}
	outer(dst, a, b)
	want := []float64{3, 4, 5, 6, 8, 10}
	for i, v := range want {
		if dst[i] != v {
			t.Fatalf("outer()[%d] = %v, want %v", i, dst[i], v)
		}
	}
}

func TestOuterAddAccumulates(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{1, 1}
	dst := []float64{10, 10, 10, 10}
	outerAdd(dst, a, b)
	want := []float64{11, 11, 12, 12}
	for i, v := range want {
		if dst[i] != v {
			t.Fatalf("outerAdd()[%d] = %v, want %v", i, dst[i], v)
		}
	}
}

func TestAxpyAdd(t *testing.T) {
	dst := []float64{1, 1, 1}
	axpyAdd(dst, 2, []float64{1, 2, 3})
	want := []float64{3, 5, 7}
	for i, v := range want {
		if dst[i] != v {
			t.Fatalf("axpyAdd()[%d] = %v, want %v", i, dst[i], v)
		}
	}
}

func TestAddIntoMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("addInto did not panic on length mismatch")
		}
	}()
	addInto([]float64{1, 2}, []float64{1})
}

// TestOuterRowSetAVX2MatchesScalar exercises the AVX2 lane directly
// (regardless of the runtime's actual cpu.HasAVX2 detection) against
// K >= 4, including a K that is not a multiple of 4 to cover the
// scalar remainder tail, so a sign or operand-order mistake in the
// MulAdd call is caught even on a machine without AVX2.
func TestOuterRowSetAVX2MatchesScalar(t *testing.T) {
	scale := 2.5
	b := []float64{1, 2, 3, 4, 5, 6}
	got := make([]float64, len(b))
	outerRowSetAVX2(got, scale, b)

	want := make([]float64, len(b))
	for j, bv := range b {
		want[j] = scale * bv
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outerRowSetAVX2()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOuterRowAddAVX2MatchesScalar(t *testing.T) {
	scale := 1.5
	b := []float64{1, 2, 3, 4, 5, 6}
	row := []float64{10, 10, 10, 10, 10, 10}
	want := append([]float64(nil), row...)
	for j, bv := range b {
		want[j] += scale * bv
	}

	outerRowAddAVX2(row, scale, b)
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("outerRowAddAVX2()[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}

// TestOuterRowSetAndAddAgreeAtK4 drives outerRowSet/outerRowAdd through
// their public entry points with len(b) == 4, the exact threshold that
// selects the AVX2 path, so any future divergence between the scalar
// and vectorized lanes at this boundary is caught regardless of which
// lane the runtime picks.
func TestOuterRowSetAndAddAgreeAtK4(t *testing.T) {
	scale := 3.0
	b := []float64{1, 2, 3, 4}

	gotSet := make([]float64, 4)
	outerRowSet(gotSet, scale, b)
	wantSet := []float64{3, 6, 9, 12}
	for i := range wantSet {
		if gotSet[i] != wantSet[i] {
			t.Fatalf("outerRowSet()[%d] = %v, want %v", i, gotSet[i], wantSet[i])
		}
	}

	gotAdd := []float64{100, 100, 100, 100}
	outerRowAdd(gotAdd, scale, b)
	wantAdd := []float64{103, 106, 109, 112}
	for i := range wantAdd {
		if gotAdd[i] != wantAdd[i] {
			t.Fatalf("outerRowAdd()[%d] = %v, want %v", i, gotAdd[i], wantAdd[i])
		}
	}
}

func TestBatchedOuterAddMatchesLoop(t *testing.T) {
	kout, kin, arows := 2, 3, 4
	a := make([]float64, arows*kout)
	b := make([]float64, arows*kin)
	for i := range a {
		a[i] = float64(i + 1)
	}
	for i := range b {
		b[i] = float64(2*i + 1)
	}

	got := make([]float64, kout*kin)
	batchedOuterAdd(got, kout, kin, a, arows, b)

	want := make([]float64, kout*kin)
	for r := 0; r < arows; r++ {
		outerAdd(want, a[r*kout:r*kout+kout], b[r*kin:r*kin+kin])
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("batchedOuterAdd()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
