package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/manningwu07/skipgram/IO"
	"github.com/manningwu07/skipgram/dataset"
	"github.com/manningwu07/skipgram/params"
	"github.com/manningwu07/skipgram/skipgram"
)

var (
	configFlag = flag.String("config", "", "Optional YAML config file")

	seedFlag     = flag.Int("seed", params.Config.Seed, "random seed")
	epochsFlag   = flag.Int("epochs", params.Config.Epochs, "number of epochs to train")
	tokenFlag    = flag.Int("token-size", params.Config.TokenSize, "BPE vocab size")
	embFlag      = flag.Int("embedding-size", params.Config.EmbeddingSize, "embedding size of token")
	windowFlag   = flag.Int("window-size", params.Config.WindowSize, "window radius")
	batchFlag    = flag.Int("batch-size", params.Config.BatchSize, "batch size for training")
	valBatchFlag = flag.Int("val-batch-size", params.Config.ValBatchSize, "batch size for validation")
	lrFlag       = flag.Float64("lr", params.Config.LR, "learning rate")
	valRatioFlag = flag.Float64("val-ratio", params.Config.ValRatio, "ratio for validation")
	workersFlag  = flag.Int("workers", params.Config.Workers, "batch prefetch workers")
	dataFlag     = flag.String("data", params.Config.DataPath, "corpus CSV path")
	columnFlag   = flag.String("text-column", params.Config.TextColumn, "corpus text column")
	tokenDirFlag = flag.String("token-dir", params.Config.TokenDir, "tokenizer artifact dir")
	embDirFlag   = flag.String("embedding-dir", params.Config.EmbeddingDir, "embedding output dir")
	modelDirFlag = flag.String("model-dir", params.Config.ModelDir, "best checkpoint dir")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	cfg := params.Config
	if *configFlag != "" {
		if err := params.LoadInto(*configFlag, &cfg); err != nil {
			fatal(err)
		}
	}
	applySetFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	rand.Seed(int64(cfg.Seed))

	// ---- Corpus ----
	sentences, err := IO.ReadCorpusColumn(cfg.DataPath, cfg.TextColumn)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Loaded %d sentences from %s\n", len(sentences), cfg.DataPath)

	// ---- Tokenizer (built lazily, cached on disk) ----
	textPath := filepath.Join(cfg.TokenDir, "english.txt")
	if !IO.FileExists(textPath) {
		if err := IO.WriteSentenceFile(sentences, textPath); err != nil {
			fatal(err)
		}
	}
	tokPath := filepath.Join(cfg.TokenDir, "en_bpe.json")
	tok, err := IO.TrainOrLoadBPE(textPath, tokPath, cfg.TokenSize)
	if err != nil {
		fatal(err)
	}

	idxData := make([][]int, 0, len(sentences))
	for _, sen := range sentences {
		ids, err := tok.Encode(sen)
		if err != nil {
			fatal(err)
		}
		idxData = append(idxData, ids)
	}

	// ---- Dataset ----
	pairs := dataset.GeneratePairs(idxData, cfg.WindowSize)
	fmt.Printf("Generated %d training pairs (window %d)\n", len(pairs), cfg.WindowSize)
	trainPairs, valPairs := dataset.Split(pairs, cfg.ValRatio, int64(cfg.Seed))

	trainLoader := dataset.NewLoader(trainPairs, cfg.BatchSize, true, cfg.Workers, int64(cfg.Seed))
	valLoader := dataset.NewLoader(valPairs, cfg.ValBatchSize, false, cfg.Workers, int64(cfg.Seed))

	// ---- Model & training ----
	model := skipgram.New(cfg.TokenSize, cfg.EmbeddingSize, cfg.LR)
	ckptPath := filepath.Join(cfg.ModelDir, "en_skipgram.ckpt")

	state, err := TrainSkipGram(cfg, model, trainLoader, valLoader, ckptPath)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Training stopped after epoch %d (%s), best val loss %.6f\n",
		state.Epoch, state.Reason, state.MinValLoss)

	// ---- Export from the persisted best checkpoint ----
	ck, err := IO.LoadCheckpoint(ckptPath)
	if err != nil {
		fatal(fmt.Errorf("no usable checkpoint, nothing to export: %w", err))
	}
	weightPath := filepath.Join(cfg.EmbeddingDir, "en_weight.npy")
	biasPath := filepath.Join(cfg.EmbeddingDir, "en_bias.npy")
	if err := IO.ExportEmbeddings(ck.State, weightPath, biasPath); err != nil {
		fatal(err)
	}
	fmt.Printf("Exported embeddings from epoch %d to %s, %s\n", ck.Epoch, weightPath, biasPath)
}

// applySetFlags copies only flags the user actually passed over cfg, so the
// precedence is flags > config file > defaults.
func applySetFlags(cfg *params.TrainingConfig) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seedFlag
		case "epochs":
			cfg.Epochs = *epochsFlag
		case "token-size":
			cfg.TokenSize = *tokenFlag
		case "embedding-size":
			cfg.EmbeddingSize = *embFlag
		case "window-size":
			cfg.WindowSize = *windowFlag
		case "batch-size":
			cfg.BatchSize = *batchFlag
		case "val-batch-size":
			cfg.ValBatchSize = *valBatchFlag
		case "lr":
			cfg.LR = *lrFlag
		case "val-ratio":
			cfg.ValRatio = *valRatioFlag
		case "workers":
			cfg.Workers = *workersFlag
		case "data":
			cfg.DataPath = *dataFlag
		case "text-column":
			cfg.TextColumn = *columnFlag
		case "token-dir":
			cfg.TokenDir = *tokenDirFlag
		case "embedding-dir":
			cfg.EmbeddingDir = *embDirFlag
		case "model-dir":
			cfg.ModelDir = *modelDirFlag
		}
	})
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
