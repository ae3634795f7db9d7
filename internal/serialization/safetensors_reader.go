package serialization

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
)

// MaxHeaderSize bounds the JSON header so a corrupt length cannot trigger a huge allocation.
const MaxHeaderSize = 100 << 20

// ReadSafeTensors loads every tensor of a file written by WriteSafeTensors.
func ReadSafeTensors(path string) (map[string][]float64, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read file")
	}
	return DecodeSafeTensors(data)
}

// DecodeSafeTensors parses a SafeTensors encoding of 1-D F64 tensors.
func DecodeSafeTensors(file []byte) (map[string][]float64, map[string]string, error) {
	if len(file) < 8 {
		return nil, nil, errors.Wrap(ErrTruncated, "missing header size")
	}
	headerSize := binary.LittleEndian.Uint64(file[:8])
	if headerSize > MaxHeaderSize {
		return nil, nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}
	if uint64(len(file)-8) < headerSize {
		return nil, nil, errors.Wrap(ErrTruncated, "header")
	}
	headerJSON := file[8 : 8+headerSize]
	body := file[8+headerSize:]

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header JSON")
	}

	var metadata map[string]string
	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, errors.Wrap(err, "failed to parse metadata")
		}
		delete(raw, metadataKey)
	}

	if s, ok := metadata[MetadataChecksum]; ok {
		stored, err := parseChecksum(s)
		if err != nil {
			return nil, nil, err
		}
		if err := ValidateChecksum(ComputeChecksum(body), stored); err != nil {
			return nil, nil, err
		}
	}

	tensors := make(map[string][]float64, len(raw))
	for name, msg := range raw {
		var h SafeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse header for tensor %s", name)
		}
		values, err := decodeTensor(name, h, body)
		if err != nil {
			return nil, nil, err
		}
		tensors[name] = values
	}

	return tensors, metadata, nil
}

// decodeTensor validates h against body and decodes its values.
func decodeTensor(name string, h SafeTensorHeader, body []byte) ([]float64, error) {
	if h.DType != dtypeF64 {
		return nil, errors.Wrapf(ErrUnsupportedDType, "tensor %s: %s", name, h.DType)
	}

	start, end := h.DataOffsets[0], h.DataOffsets[1]
	if start < 0 || end < start {
		return nil, errors.Wrapf(ErrNegativeOffset, "tensor %s: [%d, %d)", name, start, end)
	}
	if end > int64(len(body)) {
		return nil, errors.Wrapf(ErrOutOfBounds, "tensor %s: end %d, data size %d", name, end, len(body))
	}

	// The element count is bounded by the offsets, so the product is checked
	// by division and never overflows.
	limit := (end - start) / 8
	n := int64(1)
	for _, dim := range h.Shape {
		if dim < 0 {
			return nil, errors.Wrapf(ErrShapeMismatch, "tensor %s: negative dimension %d", name, dim)
		}
		if dim > 0 && n > limit/dim {
			return nil, errors.Wrapf(ErrShapeMismatch, "tensor %s: shape %v exceeds offsets span %d", name, h.Shape, end-start)
		}
		n *= dim
	}
	if n*8 != end-start {
		return nil, errors.Wrapf(ErrShapeMismatch, "tensor %s: shape %v needs %d bytes, offsets span %d", name, h.Shape, n*8, end-start)
	}

	values := make([]float64, n)
	for i := range values {
		off := start + int64(i)*8
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(body[off : off+8]))
	}
	return values, nil
}
