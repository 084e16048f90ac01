package utils

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// RandomArray fills a slice with uniform values in (-1/sqrt(v), 1/sqrt(v)).
func RandomArray(size int, v float64) []float64 {
	min := -1.0 / math.Sqrt(v+1e-12)
	max := 1.0 / math.Sqrt(v+1e-12)
	out := make([]float64, size)
	for i := 0; i < size; i++ {
		out[i] = min + (max-min)*rand.Float64()
	}
	return out
}

// ColSoftmax applies softmax independently to each column of a
// (classes x batch) matrix. Used for logits -> probabilities.
func ColSoftmax(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		// numerical stability: subtract the column max
		mx := m.At(0, j)
		for i := 1; i < r; i++ {
			if v := m.At(i, j); v > mx {
				mx = v
			}
		}
		sum := 0.0
		for i := 0; i < r; i++ {
			e := math.Exp(m.At(i, j) - mx)
			out.Set(i, j, e)
			sum += e
		}
		for i := 0; i < r; i++ {
			out.Set(i, j, out.At(i, j)/sum)
		}
	}
	return out
}

// BatchCrossEntropy computes mean cross-entropy of logits (classes x batch)
// against integer targets, top-1 accuracy over the batch, and the gradient
// of the mean loss w.r.t. the logits ((p - onehot)/batch per column).
func BatchCrossEntropy(logits *mat.Dense, targets []int) (loss, acc float64, dLogits *mat.Dense) {
	r, c := logits.Dims()
	if len(targets) != c {
		panic("batchCrossEntropy: targets length does not match batch size")
	}
	probs := ColSoftmax(logits)
	dLogits = mat.NewDense(r, c, nil)
	correct := 0
	for j := 0; j < c; j++ {
		gold := targets[j]
		if gold < 0 || gold >= r {
			panic("batchCrossEntropy: target index out of range")
		}
		p := probs.At(gold, j)
		loss += -math.Log(p + 1e-12)

		argmax := 0
		best := probs.At(0, j)
		for i := 1; i < r; i++ {
			if v := probs.At(i, j); v > best {
				best = v
				argmax = i
			}
		}
		if argmax == gold {
			correct++
		}

		inv := 1.0 / float64(c)
		for i := 0; i < r; i++ {
			g := probs.At(i, j)
			if i == gold {
				g -= 1.0
			}
			dLogits.Set(i, j, g*inv)
		}
	}
	loss /= float64(c)
	acc = float64(correct) / float64(c)
	return loss, acc, dLogits
}

// ToDense converts any mat.Matrix to *mat.Dense without copying when possible.
func ToDense(m mat.Matrix) *mat.Dense {
	if d, ok := m.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(m)
}

// ZerosLike allocates a zero matrix with the same dims as a.
func ZerosLike(a *mat.Dense) *mat.Dense {
	r, c := a.Dims()
	return mat.NewDense(r, c, nil)
}
