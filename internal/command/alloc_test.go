package command

import (
	"bytes"
	"strconv"
	"testing"

	cset "github.com/corekv/corekv/internal/container/set"
	"github.com/corekv/corekv/internal/obj"
)

func newIntSetForAlloc(t *testing.T, vals ...int64) *cset.Set {
	t.Helper()
	s := cset.New(obj.FromInt(vals[0]))
	for _, v := range vals {
		s.Add(obj.FromInt(v), cset.Limits{MaxIntsetEntries: 512})
	}
	return s
}

// TestSInterIntegerScanAllocsDoNotScaleWithSetSize is the Go-idiomatic
// equivalent of spec §8's "zero value-object allocation per scanned
// element" property: when every source set is integer-encoded, membership
// probes during the scan must not allocate an *obj.Object per element
// (only elements that end up in the result do). Rather than assert an
// exact allocation count — fragile across Go versions — this compares the
// per-call allocation cost at two set sizes: fixed bookkeeping overhead
// stays flat, but a per-element allocation would show up as growth
// proportional to set size.
func TestSInterIntegerScanAllocsDoNotScaleWithSetSize(t *testing.T) {
	small := allocsForDisjointIntersection(t, 5)
	large := allocsForDisjointIntersection(t, 500)

	if large > small+4 {
		t.Fatalf("allocs/run grew from %.1f (n=5) to %.1f (n=500); membership probes must not allocate per element", small, large)
	}
}

func allocsForDisjointIntersection(t *testing.T, n int) float64 {
	t.Helper()
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	aArgs := [][]byte{[]byte("SADD"), []byte("a")}
	bArgs := [][]byte{[]byte("SADD"), []byte("b")}
	for i := 0; i < n; i++ {
		aArgs = append(aArgs, []byte(strconv.Itoa(i)))
		bArgs = append(bArgs, []byte(strconv.Itoa(i+n*10)))
	}
	SAdd(ctx, aArgs)
	flush(ctx, &buf)
	SAdd(ctx, bArgs)
	flush(ctx, &buf)

	keys := [][]byte{[]byte("a"), []byte("b")}
	return testing.AllocsPerRun(20, func() {
		result, wrongType := sinter(ctx, keys)
		if wrongType {
			t.Fatalf("unexpected wrong-type error")
		}
		if len(result) != 0 {
			t.Fatalf("disjoint integer sets should intersect to empty, got %v", result)
		}
	})
}

func TestSetFindLiteralIntSetProbeAllocsAreFlat(t *testing.T) {
	small := newIntSetForAlloc(t, rangeInts(3)...)
	large := newIntSetForAlloc(t, rangeInts(500)...)
	lit := obj.LiteralFromInt(-1) // absent from both: pure probe cost, no match bookkeeping

	avgSmall := testing.AllocsPerRun(50, func() { small.FindLiteral(&lit) })
	avgLarge := testing.AllocsPerRun(50, func() { large.FindLiteral(&lit) })

	if avgLarge > avgSmall+1 {
		t.Fatalf("FindLiteral allocs/run grew from %.1f to %.1f with set size; a single probe must not allocate per candidate", avgSmall, avgLarge)
	}
}

func rangeInts(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}
