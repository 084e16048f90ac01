package dataset

import (
	"math"
	"math/rand"
)

// Pair is one supervised skip-gram example: predict Context from Center.
// Duplicates are meaningful and must be kept; frequency is the signal.
type Pair struct {
	Center  int
	Context int
}

// GeneratePairs slides a window of the given radius over every sentence and
// emits all (center, context) pairs. Pairs never cross a sentence boundary;
// sentences shorter than 2 tokens contribute nothing. Centers are visited in
// position order within a sentence. Token ids are treated as opaque ints.
func GeneratePairs(corpus [][]int, windowRadius int) []Pair {
	var pairs []Pair
	for _, sen := range corpus {
		if len(sen) < 2 {
			continue
		}
		for i := 0; i < len(sen); i++ {
			lo := i - windowRadius
			if lo < 0 {
				lo = 0
			}
			hi := i + windowRadius
			if hi > len(sen)-1 {
				hi = len(sen) - 1
			}
			for j := lo; j <= hi; j++ {
				if j == i {
					continue
				}
				pairs = append(pairs, Pair{Center: sen[i], Context: sen[j]})
			}
		}
	}
	return pairs
}

// Split partitions pairs into train/validation subsets by a seeded random
// shuffle of pair indices: validation takes round(valRatio*n) of them.
// Disjoint by instance (duplicate pair values may land on both sides) and
// exactly reproducible for a fixed seed.
func Split(pairs []Pair, valRatio float64, seed int64) (train, val []Pair) {
	n := len(pairs)
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	nVal := int(math.Round(valRatio * float64(n)))
	val = make([]Pair, 0, nVal)
	train = make([]Pair, 0, n-nVal)
	for k, idx := range perm {
		if k < nVal {
			val = append(val, pairs[idx])
		} else {
			train = append(train, pairs[idx])
		}
	}
	return train, val
}
