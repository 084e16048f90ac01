package IO

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manningwu07/skipgram/params"
)

// Checkpoint is the durable best-model record. At most one exists per run;
// each improvement overwrites it in place.
type Checkpoint struct {
	Epoch   int
	ValLoss float64
	State   params.ModelState
}

// SaveCheckpoint gob-encodes the checkpoint to path, truncating any earlier
// best. Write errors must reach the caller: a silently lost checkpoint
// breaks the best-model invariant.
func SaveCheckpoint(path string, ck *Checkpoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create checkpoint %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(ck); err != nil {
		f.Close()
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	return f.Close()
}

func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", path, err)
	}
	defer f.Close()
	var ck Checkpoint
	if err := gob.NewDecoder(f).Decode(&ck); err != nil {
		return nil, fmt.Errorf("decode checkpoint %s: %w", path, err)
	}
	return &ck, nil
}
