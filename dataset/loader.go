package dataset

import "math/rand"

// Batch holds the center/context columns of one mini-batch.
type Batch struct {
	Centers  []int
	Contexts []int
}

// Loader yields fixed-size batches over a pair set. Batch assembly fans out
// across worker goroutines but delivery order is strictly sequential, so
// per-epoch loss averaging stays deterministic. Each Epoch call is one full
// restartable pass; with shuffling on, the order is redrawn per epoch from
// the loader's seeded RNG.
type Loader struct {
	pairs     []Pair
	batchSize int
	shuffle   bool
	workers   int
	rng       *rand.Rand
}

func NewLoader(pairs []Pair, batchSize int, shuffle bool, workers int, seed int64) *Loader {
	if batchSize < 1 {
		panic("loader: batch size must be >= 1")
	}
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		pairs:     pairs,
		batchSize: batchSize,
		shuffle:   shuffle,
		workers:   workers,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Batches reports the number of batches per epoch (last one may be partial).
func (l *Loader) Batches() int {
	return (len(l.pairs) + l.batchSize - 1) / l.batchSize
}

// Epoch starts one pass and returns the batch stream. The shuffle order is
// drawn synchronously here so concurrent assembly cannot perturb it.
func (l *Loader) Epoch() <-chan Batch {
	order := make([]int, len(l.pairs))
	if l.shuffle {
		copy(order, l.rng.Perm(len(l.pairs)))
	} else {
		for i := range order {
			order[i] = i
		}
	}

	n := l.Batches()
	out := make(chan Batch, l.workers)
	if n == 0 {
		close(out)
		return out
	}

	slots := make([]chan Batch, n)
	for i := range slots {
		slots[i] = make(chan Batch, 1)
	}
	jobs := make(chan int)
	for w := 0; w < l.workers; w++ {
		go func() {
			for b := range jobs {
				slots[b] <- l.assemble(order, b)
			}
		}()
	}
	go func() {
		for b := 0; b < n; b++ {
			jobs <- b
		}
		close(jobs)
	}()
	// reorder: workers finish out of order, consumers must not
	go func() {
		for b := 0; b < n; b++ {
			out <- <-slots[b]
		}
		close(out)
	}()
	return out
}

func (l *Loader) assemble(order []int, b int) Batch {
	lo := b * l.batchSize
	hi := lo + l.batchSize
	if hi > len(order) {
		hi = len(order)
	}
	batch := Batch{
		Centers:  make([]int, hi-lo),
		Contexts: make([]int, hi-lo),
	}
	for k, idx := range order[lo:hi] {
		batch.Centers[k] = l.pairs[idx].Center
		batch.Contexts[k] = l.pairs[idx].Context
	}
	return batch
}
