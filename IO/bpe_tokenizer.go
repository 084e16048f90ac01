package IO

import (
	"fmt"
	"os"
	"path/filepath"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/models"
	"github.com/sugarme/tokenizer/normalizers"
	"github.com/sugarme/tokenizer/pretokenizers"
	"github.com/sugarme/tokenizer/trainers"
)

// Tokenizer wraps the trained BPE model behind the one operation training
// needs: sentence -> token ids.
type Tokenizer struct {
	t *tk.Tokenizer
}

// TrainOrLoadBPE loads the tokenizer artifact at tokPath if it exists,
// otherwise trains a BPE model of the given vocab size on the sentence file
// and saves it there for later runs.
func TrainOrLoadBPE(corpusPath, tokPath string, vocabSize int) (*Tokenizer, error) {
	if FileExists(tokPath) {
		t, err := tk.FromFile(tokPath)
		if err != nil {
			return nil, fmt.Errorf("load tokenizer %s: %w", tokPath, err)
		}
		return &Tokenizer{t: t}, nil
	}

	bpe := models.NewBPE()
	t := tk.NewTokenizer(bpe)

	// NFKC + lowercase covers the English-side preprocessing
	t.WithNormalizer(normalizers.NewSequence(
		normalizers.NewNFKC(),
		normalizers.NewLowercase(),
	))
	t.WithPreTokenizer(pretokenizers.NewWhitespaceSplit())

	tr := trainers.NewBpeTrainer()
	tr.VocabSize = vocabSize
	tr.SpecialTokens = []string{"<pad>", "<bos>", "<eos>", "<unk>"}

	if err := t.Train(tr, []string{corpusPath}); err != nil {
		return nil, fmt.Errorf("train tokenizer: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(tokPath), 0o755); err != nil {
		return nil, err
	}
	if err := t.Save(tokPath); err != nil {
		return nil, fmt.Errorf("save tokenizer %s: %w", tokPath, err)
	}
	return &Tokenizer{t: t}, nil
}

// Encode turns raw text into token ids.
func (tz *Tokenizer) Encode(text string) ([]int, error) {
	enc, err := tz.t.EncodeSingle(text)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(enc.Ids))
	for i, v := range enc.Ids {
		out[i] = int(v)
	}
	return out, nil
}
