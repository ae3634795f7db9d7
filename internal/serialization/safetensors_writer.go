package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// dtypeF64 is the only dtype this package reads and writes.
const dtypeF64 = "F64"

// metadataKey is the reserved header entry for string metadata.
const metadataKey = "__metadata__"

// SafeTensorsWriter writes models in SafeTensors format.
// SafeTensors is the standard format for HuggingFace models.
type SafeTensorsWriter struct {
	file   *os.File
	closed bool
}

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// NewSafeTensorsWriter creates a new SafeTensors file writer.
func NewSafeTensorsWriter(path string) (*SafeTensorsWriter, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file")
	}

	return &SafeTensorsWriter{
		file:   file,
		closed: false,
	}, nil
}

// WriteSafeTensors writes tensors to a SafeTensors file.
//
// Tensors are written in alphabetical order by name.
func WriteSafeTensors(path string, tensors map[string][]float64, metadata map[string]string) error {
	writer, err := NewSafeTensorsWriter(path)
	if err != nil {
		return err
	}

	if err := writer.WriteStateDict(tensors, metadata); err != nil {
		_ = writer.Close() // Best effort close
		return err
	}
	return writer.Close()
}

// WriteStateDict writes a state dictionary to the SafeTensors file.
func (w *SafeTensorsWriter) WriteStateDict(stateDict map[string][]float64, metadata map[string]string) error {
	if w.closed {
		return errors.New("writer is closed")
	}
	return EncodeSafeTensors(w.file, stateDict, metadata)
}

// Close closes the writer and the underlying file.
func (w *SafeTensorsWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// EncodeSafeTensors writes the SafeTensors encoding of stateDict to out.
//
// The SHA-256 of the data section is added to the metadata; a caller-supplied
// "sha256" entry is overwritten.
func EncodeSafeTensors(out io.Writer, stateDict map[string][]float64, metadata map[string]string) error {
	// Sort tensor names alphabetically (SafeTensors requirement)
	tensorNames := make([]string, 0, len(stateDict))
	for name := range stateDict {
		if name == "" || name == metadataKey {
			return errors.Wrapf(ErrInvalidTensorName, "%q", name)
		}
		tensorNames = append(tensorNames, name)
	}
	sort.Strings(tensorNames)

	header := make(map[string]any, len(tensorNames)+1)
	var data bytes.Buffer

	var currentOffset int64
	for _, name := range tensorNames {
		values := stateDict[name]
		size := int64(len(values)) * 8

		header[name] = SafeTensorHeader{
			DType:       dtypeF64,
			Shape:       []int64{int64(len(values))},
			DataOffsets: [2]int64{currentOffset, currentOffset + size},
		}
		currentOffset += size

		var buf [8]byte
		for _, v := range values {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			data.Write(buf[:])
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	sum := ComputeChecksum(data.Bytes())
	meta[MetadataChecksum] = hex.EncodeToString(sum[:])
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	// Write header size (8 bytes, little-endian uint64)
	if err := binary.Write(out, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := out.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if _, err := out.Write(data.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write tensor data")
	}

	return nil
}
