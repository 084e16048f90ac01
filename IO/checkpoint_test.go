package IO

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/manningwu07/skipgram/params"
)

func sampleState(fill float64) params.ModelState {
	in := []float64{fill, fill + 1, fill + 2, fill + 3, fill + 4, fill + 5}
	out := []float64{fill, fill - 1, fill - 2, fill - 3, fill - 4, fill - 5}
	return params.ModelState{
		InData: in, InRows: 2, InCols: 3,
		OutData: out, OutRows: 3, OutCols: 2,
		BiasData: []float64{fill, fill, fill},
	}
}

func TestCheckpointRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ck.gob")
	want := &Checkpoint{Epoch: 4, ValLoss: 1.25, State: sampleState(0.5)}
	if err := SaveCheckpoint(path, want); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}
	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("roundtrip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestCheckpointOverwritesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ck.gob")
	if err := SaveCheckpoint(path, &Checkpoint{Epoch: 0, ValLoss: 9, State: sampleState(1)}); err != nil {
		t.Fatal(err)
	}
	if err := SaveCheckpoint(path, &Checkpoint{Epoch: 3, ValLoss: 2, State: sampleState(2)}); err != nil {
		t.Fatal(err)
	}
	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Epoch != 3 || got.ValLoss != 2 {
		t.Fatalf("expected the later checkpoint, got %+v", got)
	}
}

func TestLoadCheckpointMissingFile(t *testing.T) {
	if _, err := LoadCheckpoint(filepath.Join(t.TempDir(), "absent.gob")); err == nil {
		t.Fatal("expected error for a missing checkpoint")
	}
}
