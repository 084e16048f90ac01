package IO

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/manningwu07/skipgram/params"
)

// WriteNPY writes a float64 array in NumPy .npy version 1.0 format
// (little-endian '<f8', C order), so downstream consumers can numpy.load
// the embeddings without this trainer.
func WriteNPY(path string, shape []int, data []float64) error {
	numel := 1
	for _, d := range shape {
		numel *= d
	}
	if numel != len(data) {
		return fmt.Errorf("npy %s: shape %v wants %d values, have %d", path, shape, numel, len(data))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprintf("%d", d)
	}
	shapeStr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += "," // 1-d tuples need the trailing comma
	}
	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%s), }", shapeStr)
	// pad so magic+version+len+header is a multiple of 64, newline-terminated
	total := 6 + 2 + 2 + len(header) + 1
	pad := (64 - total%64) % 64
	header += strings.Repeat(" ", pad) + "\n"

	if _, err := w.WriteString("\x93NUMPY"); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := w.WriteString(header); err != nil {
		return err
	}
	buf8 := make([]byte, 8)
	for _, v := range data {
		binary.LittleEndian.PutUint64(buf8, math.Float64bits(v))
		if _, err := w.Write(buf8); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// ExportEmbeddings writes the projection weight (vocab x embedding) and
// bias (vocab,) of a model snapshot as NPY artifacts.
func ExportEmbeddings(st params.ModelState, weightPath, biasPath string) error {
	if err := WriteNPY(weightPath, []int{st.OutRows, st.OutCols}, st.OutData); err != nil {
		return fmt.Errorf("export weight: %w", err)
	}
	if err := WriteNPY(biasPath, []int{len(st.BiasData)}, st.BiasData); err != nil {
		return fmt.Errorf("export bias: %w", err)
	}
	return nil
}
