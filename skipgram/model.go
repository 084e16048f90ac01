package skipgram

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/manningwu07/skipgram/params"
	"github.com/manningwu07/skipgram/utils"
)

// Adam defaults.
const (
	adamBeta1 = 0.9
	adamBeta2 = 0.999
	adamEps   = 1e-8
)

// Model is the skip-gram network: an embedding lookup followed by a single
// linear projection back onto the vocabulary.
//
//	logits[:, b] = Out * In[:, centers[b]] + Bias
//
// In is (embedding x vocab) so a column is one token's embedding; Out is
// (vocab x embedding) and Bias (vocab x 1). Out and Bias are the exported
// artifacts.
type Model struct {
	In   *mat.Dense
	Out  *mat.Dense
	Bias *mat.Dense

	lr float64

	// Adam state, one slot per parameter, shared step counter.
	inM, inV     *mat.Dense
	outM, outV   *mat.Dense
	biasM, biasV *mat.Dense
	t            int

	// saved by Forward for the following Backward
	lastCenters []int
	lastHidden  *mat.Dense // (embedding x batch)

	// grads written by Backward, consumed by Step
	dIn, dOut, dBias *mat.Dense
}

func New(vocabSize, embeddingSize int, lr float64) *Model {
	in := mat.NewDense(embeddingSize, vocabSize,
		utils.RandomArray(embeddingSize*vocabSize, float64(embeddingSize)))
	out := mat.NewDense(vocabSize, embeddingSize,
		utils.RandomArray(vocabSize*embeddingSize, float64(embeddingSize)))
	bias := mat.NewDense(vocabSize, 1, nil)
	return &Model{
		In:   in,
		Out:  out,
		Bias: bias,
		lr:   lr,

		inM: utils.ZerosLike(in), inV: utils.ZerosLike(in),
		outM: utils.ZerosLike(out), outV: utils.ZerosLike(out),
		biasM: utils.ZerosLike(bias), biasV: utils.ZerosLike(bias),
	}
}

// Forward computes logits (vocab x batch) for a batch of center token ids.
func (m *Model) Forward(centers []int) *mat.Dense {
	emb, vocab := m.In.Dims()
	h := mat.NewDense(emb, len(centers), nil)
	for b, c := range centers {
		if c < 0 || c >= vocab {
			panic(fmt.Sprintf("forward: center id %d outside vocab of %d", c, vocab))
		}
		for i := 0; i < emb; i++ {
			h.Set(i, b, m.In.At(i, c))
		}
	}

	logits := mat.NewDense(vocab, len(centers), nil)
	logits.Mul(m.Out, h)
	for b := 0; b < len(centers); b++ {
		for i := 0; i < vocab; i++ {
			logits.Set(i, b, logits.At(i, b)+m.Bias.At(i, 0))
		}
	}

	m.lastCenters = append(m.lastCenters[:0], centers...)
	m.lastHidden = h
	return logits
}

// Backward takes the loss gradient w.r.t. the logits of the last Forward
// call and produces parameter gradients. It does not mutate parameters.
func (m *Model) Backward(dLogits *mat.Dense) {
	if m.lastHidden == nil {
		panic("backward: no forward pass recorded")
	}
	vocab, batch := dLogits.Dims()
	if vr, _ := m.Out.Dims(); vr != vocab {
		panic("backward: dLogits rows do not match vocab")
	}
	if len(m.lastCenters) != batch {
		panic("backward: dLogits batch does not match last forward")
	}

	// dOut = dLogits * H^T
	dOut := utils.ZerosLike(m.Out)
	dOut.Mul(dLogits, m.lastHidden.T())

	// dBias[i] = sum_b dLogits[i, b]
	dBias := utils.ZerosLike(m.Bias)
	for i := 0; i < vocab; i++ {
		s := 0.0
		for b := 0; b < batch; b++ {
			s += dLogits.At(i, b)
		}
		dBias.Set(i, 0, s)
	}

	// dH = Out^T * dLogits, scattered into the center columns of dIn
	emb, _ := m.In.Dims()
	dH := mat.NewDense(emb, batch, nil)
	dH.Mul(m.Out.T(), dLogits)
	dIn := utils.ZerosLike(m.In)
	for b, c := range m.lastCenters {
		for i := 0; i < emb; i++ {
			dIn.Set(i, c, dIn.At(i, c)+dH.At(i, b))
		}
	}

	m.dIn, m.dOut, m.dBias = dIn, dOut, dBias
}

// Step applies one Adam update using the gradients from the last Backward.
func (m *Model) Step() {
	if m.dIn == nil {
		panic("step: no gradients, call Backward first")
	}
	m.t++
	adamUpdateInPlace(m.In, m.dIn, m.inM, m.inV, m.t, m.lr, adamBeta1, adamBeta2, adamEps)
	adamUpdateInPlace(m.Out, m.dOut, m.outM, m.outV, m.t, m.lr, adamBeta1, adamBeta2, adamEps)
	adamUpdateInPlace(m.Bias, m.dBias, m.biasM, m.biasV, m.t, m.lr, adamBeta1, adamBeta2, adamEps)
	m.dIn, m.dOut, m.dBias = nil, nil, nil
}

func (m *Model) LR() float64 { return m.lr }

// ScaleLR multiplies the learning rate, used by the per-epoch decay.
func (m *Model) ScaleLR(factor float64) { m.lr *= factor }

// Snapshot copies the current parameters into a serializable state.
func (m *Model) Snapshot() params.ModelState {
	inR, inC := m.In.Dims()
	outR, outC := m.Out.Dims()
	biasR, _ := m.Bias.Dims()

	st := params.ModelState{
		InData: make([]float64, inR*inC), InRows: inR, InCols: inC,
		OutData: make([]float64, outR*outC), OutRows: outR, OutCols: outC,
		BiasData: make([]float64, biasR),
	}
	copy(st.InData, m.In.RawMatrix().Data)
	copy(st.OutData, m.Out.RawMatrix().Data)
	copy(st.BiasData, m.Bias.RawMatrix().Data)
	return st
}

// LoadState overwrites the parameters from a snapshot. Optimizer state is
// left untouched; restoring mid-run is not a supported operation.
func (m *Model) LoadState(st params.ModelState) error {
	inR, inC := m.In.Dims()
	outR, outC := m.Out.Dims()
	biasR, _ := m.Bias.Dims()
	if st.InRows != inR || st.InCols != inC || st.OutRows != outR || st.OutCols != outC || len(st.BiasData) != biasR {
		return fmt.Errorf("snapshot dims (%dx%d, %dx%d, %d) do not match model (%dx%d, %dx%d, %d)",
			st.InRows, st.InCols, st.OutRows, st.OutCols, len(st.BiasData),
			inR, inC, outR, outC, biasR)
	}
	copy(m.In.RawMatrix().Data, st.InData)
	copy(m.Out.RawMatrix().Data, st.OutData)
	copy(m.Bias.RawMatrix().Data, st.BiasData)
	return nil
}
