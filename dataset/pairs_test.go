package dataset

import (
	"reflect"
	"testing"
)

func countPairs(pairs []Pair) map[Pair]int {
	m := map[Pair]int{}
	for _, p := range pairs {
		m[p]++
	}
	return m
}

func TestShortSentencesYieldNoPairs(t *testing.T) {
	corpus := [][]int{{}, {42}, nil}
	if got := GeneratePairs(corpus, 3); len(got) != 0 {
		t.Fatalf("expected no pairs from short sentences, got %v", got)
	}
}

func TestWindowPairsRadiusOne(t *testing.T) {
	got := countPairs(GeneratePairs([][]int{{5, 6, 7}}, 1))
	want := map[Pair]int{
		{5, 6}: 1,
		{6, 5}: 1,
		{6, 7}: 1,
		{7, 6}: 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pairs = %v, want %v", got, want)
	}
}

func TestWindowCoversWholeShortSentence(t *testing.T) {
	// radius larger than the sentence: every ordered pair once
	pairs := GeneratePairs([][]int{{1, 2, 3}}, 10)
	if len(pairs) != 6 {
		t.Fatalf("expected 6 pairs, got %d: %v", len(pairs), pairs)
	}
}

func TestNoCrossSentencePairs(t *testing.T) {
	pairs := GeneratePairs([][]int{{1, 2}, {3, 4}}, 5)
	for _, p := range pairs {
		a := p.Center <= 2
		b := p.Context <= 2
		if a != b {
			t.Fatalf("pair %v crosses a sentence boundary", p)
		}
	}
	if len(pairs) != 4 {
		t.Fatalf("expected 4 pairs, got %d", len(pairs))
	}
}

func TestPairMultiplicityPreserved(t *testing.T) {
	// the same window repeats; its pairs must repeat too
	got := countPairs(GeneratePairs([][]int{{9, 9}}, 1))
	if got[Pair{9, 9}] != 2 {
		t.Fatalf("expected (9,9) twice, got %v", got)
	}
}

func TestCentersVisitedInOrder(t *testing.T) {
	pairs := GeneratePairs([][]int{{10, 20, 30}}, 1)
	centers := make([]int, len(pairs))
	for i, p := range pairs {
		centers[i] = p.Center
	}
	want := []int{10, 20, 20, 30}
	if !reflect.DeepEqual(centers, want) {
		t.Fatalf("center order = %v, want %v", centers, want)
	}
}

func TestSplitDeterministic(t *testing.T) {
	pairs := GeneratePairs([][]int{{1, 2, 3, 4, 5, 6, 7, 8}}, 2)
	tr1, va1 := Split(pairs, 0.25, 777)
	tr2, va2 := Split(pairs, 0.25, 777)
	if !reflect.DeepEqual(tr1, tr2) || !reflect.DeepEqual(va1, va2) {
		t.Fatal("same seed must reproduce the exact split")
	}
	tr3, _ := Split(pairs, 0.25, 778)
	if reflect.DeepEqual(tr1, tr3) {
		t.Fatal("different seeds should not produce identical splits")
	}
}

func TestSplitCountsExact(t *testing.T) {
	pairs := GeneratePairs([][]int{{1, 2, 3, 4, 5, 6, 7}}, 3)
	for _, ratio := range []float64{0.1, 0.2, 0.33, 0.5, 0.9} {
		train, val := Split(pairs, ratio, 1)
		if len(train)+len(val) != len(pairs) {
			t.Fatalf("ratio %g: %d + %d != %d", ratio, len(train), len(val), len(pairs))
		}
		wantVal := int(float64(len(pairs))*ratio + 0.5)
		if len(val) != wantVal {
			t.Fatalf("ratio %g: val size %d, want %d", ratio, len(val), wantVal)
		}
	}
}

func TestSplitIsAPartition(t *testing.T) {
	pairs := GeneratePairs([][]int{{1, 1, 2, 2, 3, 3}}, 2)
	train, val := Split(pairs, 0.3, 42)
	union := countPairs(train)
	for p, c := range countPairs(val) {
		union[p] += c
	}
	if !reflect.DeepEqual(union, countPairs(pairs)) {
		t.Fatalf("train+val multiset %v does not equal pairs %v", union, countPairs(pairs))
	}
}
