package IO

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCorpusColumn loads one text column of a CSV corpus fully into memory.
// The header row locates the column; a missing file or column is fatal to
// the caller, there is nothing to train on without it.
func ReadCorpusColumn(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 1<<20))
	r.FieldsPerRecord = -1 // corpus rows are ragged in the wild
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read corpus header: %w", err)
	}
	col := -1
	for i, name := range header {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("corpus %s has no %q column", path, column)
	}

	var out []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read corpus row: %w", err)
		}
		if col < len(rec) {
			out = append(out, rec[col])
		}
	}
	return out, nil
}

// WriteSentenceFile dumps sentences one per line; the tokenizer trains from
// this plain-text view of the corpus.
func WriteSentenceFile(sentences []string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, s := range sentences {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// FileExists true if path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
