package dataset

import (
	"reflect"
	"testing"
)

func testPairs(n int) []Pair {
	out := make([]Pair, n)
	for i := range out {
		out[i] = Pair{Center: i, Context: i + 1000}
	}
	return out
}

func drain(l *Loader) []Batch {
	var out []Batch
	for b := range l.Epoch() {
		out = append(out, b)
	}
	return out
}

func TestLoaderBatchCount(t *testing.T) {
	cases := []struct{ n, bs, want int }{
		{10, 4, 3},
		{12, 4, 3},
		{1, 4, 1},
		{0, 4, 0},
	}
	for _, c := range cases {
		l := NewLoader(testPairs(c.n), c.bs, false, 2, 0)
		if got := l.Batches(); got != c.want {
			t.Fatalf("n=%d bs=%d: Batches() = %d, want %d", c.n, c.bs, got, c.want)
		}
	}
}

func TestLoaderOrderedWithoutShuffle(t *testing.T) {
	l := NewLoader(testPairs(10), 4, false, 3, 0)
	batches := drain(l)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if !reflect.DeepEqual(batches[0].Centers, []int{0, 1, 2, 3}) {
		t.Fatalf("first batch out of order: %v", batches[0].Centers)
	}
	if !reflect.DeepEqual(batches[2].Centers, []int{8, 9}) {
		t.Fatalf("last batch should be the partial tail, got %v", batches[2].Centers)
	}
}

func TestLoaderDeliversEveryPairOncePerEpoch(t *testing.T) {
	pairs := testPairs(37)
	l := NewLoader(pairs, 5, true, 4, 7)
	seen := map[int]int{}
	for _, b := range drain(l) {
		for i, c := range b.Centers {
			seen[c]++
			if b.Contexts[i] != c+1000 {
				t.Fatalf("center %d paired with wrong context %d", c, b.Contexts[i])
			}
		}
	}
	if len(seen) != len(pairs) {
		t.Fatalf("saw %d distinct pairs, want %d", len(seen), len(pairs))
	}
	for c, n := range seen {
		if n != 1 {
			t.Fatalf("pair %d delivered %d times", c, n)
		}
	}
}

func TestLoaderRestartable(t *testing.T) {
	l := NewLoader(testPairs(20), 6, true, 2, 3)
	for epoch := 0; epoch < 3; epoch++ {
		total := 0
		for _, b := range drain(l) {
			total += len(b.Centers)
		}
		if total != 20 {
			t.Fatalf("epoch %d delivered %d pairs, want 20", epoch, total)
		}
	}
}

func TestLoaderShuffleReproducible(t *testing.T) {
	a := drain(NewLoader(testPairs(30), 7, true, 3, 99))
	b := drain(NewLoader(testPairs(30), 7, true, 3, 99))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed must reproduce the same batch sequence")
	}
}

func TestLoaderEmpty(t *testing.T) {
	l := NewLoader(nil, 4, true, 2, 0)
	if batches := drain(l); len(batches) != 0 {
		t.Fatalf("empty loader yielded %d batches", len(batches))
	}
}
