package params

import "fmt"

// ModelState is a serializable snapshot of the skip-gram parameters.
// Matrices are stored as raw row-major float64 data plus dims so the
// snapshot can be gob-encoded without dragging gonum types along.
type ModelState struct {
	InData           []float64 // input embedding (EmbeddingSize x TokenSize)
	InRows, InCols   int
	OutData          []float64 // projection weight (TokenSize x EmbeddingSize)
	OutRows, OutCols int
	BiasData         []float64 // projection bias (TokenSize)
}

type TrainingConfig struct {
	Seed          int     `yaml:"seed"`
	Epochs        int     `yaml:"epochs"`
	TokenSize     int     `yaml:"token_size"`     // |V|, also the BPE vocab target
	EmbeddingSize int     `yaml:"embedding_size"` // embedding width
	WindowSize    int     `yaml:"window_size"`    // window radius for pair generation
	BatchSize     int     `yaml:"batch_size"`
	ValBatchSize  int     `yaml:"val_batch_size"`
	LR            float64 `yaml:"lr"`
	ValRatio      float64 `yaml:"val_ratio"` // fraction of pairs held out for validation
	Workers       int     `yaml:"workers"`   // batch prefetch goroutines
	Patience      int     `yaml:"patience"`  // early stopping patience in epochs
	LRDecay       float64 `yaml:"lr_decay"`  // multiplicative decay per completed epoch

	DataPath     string `yaml:"data_path"`
	TextColumn   string `yaml:"text_column"`
	TokenDir     string `yaml:"token_dir"`
	EmbeddingDir string `yaml:"embedding_dir"`
	ModelDir     string `yaml:"model_dir"`
}

// Reasonable defaults for the dialogue-translation corpus.
var Config = TrainingConfig{
	Seed:          777,
	Epochs:        20,
	TokenSize:     7000,
	EmbeddingSize: 512,
	WindowSize:    11,
	BatchSize:     1024,
	ValBatchSize:  1024,
	LR:            1e-4,
	ValRatio:      0.1,
	Workers:       4,
	Patience:      5,
	LRDecay:       0.7,

	DataPath:     "../Data/korean_dialogue_translation.csv",
	TextColumn:   "번역문", // English translation column of the parallel corpus
	TokenDir:     "./Token",
	EmbeddingDir: "./Embedding",
	ModelDir:     "./Model",
}

// Validate rejects configs before any heavy work starts.
func (c *TrainingConfig) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.TokenSize <= 0 {
		return fmt.Errorf("token_size must be positive, got %d", c.TokenSize)
	}
	if c.EmbeddingSize <= 0 {
		return fmt.Errorf("embedding_size must be positive, got %d", c.EmbeddingSize)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window_size must be >= 1, got %d", c.WindowSize)
	}
	if c.BatchSize <= 0 || c.ValBatchSize <= 0 {
		return fmt.Errorf("batch sizes must be positive, got %d/%d", c.BatchSize, c.ValBatchSize)
	}
	if c.LR <= 0 {
		return fmt.Errorf("lr must be positive, got %g", c.LR)
	}
	if c.ValRatio <= 0 || c.ValRatio >= 1 {
		return fmt.Errorf("val_ratio must be in (0, 1), got %g", c.ValRatio)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.Patience < 1 {
		return fmt.Errorf("patience must be >= 1, got %d", c.Patience)
	}
	if c.LRDecay <= 0 || c.LRDecay > 1 {
		return fmt.Errorf("lr_decay must be in (0, 1], got %g", c.LRDecay)
	}
	return nil
}
