package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/manningwu07/skipgram/IO"
	"github.com/manningwu07/skipgram/dataset"
	"github.com/manningwu07/skipgram/params"
	"github.com/manningwu07/skipgram/utils"
)

// Trainable is the capability the controller needs from a model. Anything
// that can produce logits, absorb logit gradients, and take an optimizer
// step can be trained; tests drive the loop with a scripted fake.
type Trainable interface {
	Forward(centers []int) *mat.Dense
	Backward(dLogits *mat.Dense)
	Step()
	LR() float64
	ScaleLR(factor float64)
	Snapshot() params.ModelState
}

type StopReason string

const (
	StopEarly       StopReason = "early_stop"
	StopEpochBudget StopReason = "epoch_budget_exhausted"
)

// RunState is the loop-local training state, explicit so the checkpoint /
// early-stop decision is testable away from any tensor work. Lifecycle is
// one training invocation; nothing persists across runs.
type RunState struct {
	Epoch      int
	MinValLoss float64
	StopCount  int
	Reason     StopReason
}

func NewRunState() RunState {
	return RunState{MinValLoss: math.Inf(1)}
}

// Observe applies one epoch's validation loss to the run state. improved
// means a checkpoint must be written; stop means patience ran out. Only a
// strict improvement counts, so ties and NaN (which compares false) both
// burn patience.
func (s *RunState) Observe(valLoss float64, patience int) (improved, stop bool) {
	if valLoss < s.MinValLoss {
		s.MinValLoss = valLoss
		s.StopCount = 0
		return true, false
	}
	s.StopCount++
	return false, s.StopCount >= patience
}

// TrainSkipGram drives the epoch loop: train pass with per-batch gradient
// steps, sequential validation pass, checkpoint on strict improvement,
// early stop after cfg.Patience flat epochs, then LR decay. Returns the
// final run state; checkpoint write failures abort the run.
func TrainSkipGram(cfg params.TrainingConfig, model Trainable, trainLoader, valLoader *dataset.Loader, ckptPath string) (RunState, error) {
	state := NewRunState()
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		state.Epoch = epoch
		fmt.Printf("Epoch : %d/%d \t Learning Rate : %e\n", epoch, cfg.Epochs, model.LR())

		nb := trainLoader.Batches()
		i := 0
		for batch := range trainLoader.Epoch() {
			logits := model.Forward(batch.Centers)
			loss, acc, dLogits := utils.BatchCrossEntropy(logits, batch.Contexts)
			model.Backward(dLogits)
			model.Step()
			printProgress(i, nb, loss, acc)
			i++
		}

		valLoss, valAcc := validate(model, valLoader)
		if math.IsNaN(valLoss) || math.IsInf(valLoss, 0) {
			// never an improvement; the run will starve out via patience
			fmt.Printf("\nWarning: validation loss is not finite (%v)\n", valLoss)
		}

		improved, stop := state.Observe(valLoss, cfg.Patience)
		if improved {
			ck := &IO.Checkpoint{Epoch: epoch, ValLoss: valLoss, State: model.Snapshot()}
			if err := IO.SaveCheckpoint(ckptPath, ck); err != nil {
				return state, fmt.Errorf("checkpoint epoch %d: %w", epoch, err)
			}
		}
		if stop {
			state.Reason = StopEarly
			fmt.Println("\nTraining Early Stopped")
			return state, nil
		}

		// decay strictly after the checkpoint decision, skipped on stop
		model.ScaleLR(cfg.LRDecay)
		fmt.Printf("\nVal Loss : %.3f , Val Acc : %.3f\n\n", valLoss, valAcc)
	}
	state.Reason = StopEpochBudget
	return state, nil
}

// validate runs one no-gradient pass and averages loss/accuracy over the
// number of validation batches.
func validate(model Trainable, loader *dataset.Loader) (loss, acc float64) {
	nb := loader.Batches()
	if nb == 0 {
		// an empty split can never improve, same as a diverged loss
		return math.Inf(1), 0
	}
	var lossSum, accSum float64
	for batch := range loader.Epoch() {
		logits := model.Forward(batch.Centers)
		l, a, _ := utils.BatchCrossEntropy(logits, batch.Contexts)
		lossSum += l
		accSum += a
	}
	return lossSum / float64(nb), accSum / float64(nb)
}
