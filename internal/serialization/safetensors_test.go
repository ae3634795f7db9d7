package serialization_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/serialization"
)

func sampleState() map[string][]float64 {
	return map[string][]float64{
		"layers.0.neurons.0.w": {0.25, -1.5, math.Pi},
		"layers.0.neurons.0.b": {-0.125},
		"empty":                {},
	}
}

func TestSafeTensors_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.safetensors")
	state := sampleState()

	require.NoError(t, serialization.WriteSafeTensors(path, state, map[string]string{"arch": "MLP(3 -> 1)"}))

	got, meta, err := serialization.ReadSafeTensors(path)
	require.NoError(t, err)
	assert.Equal(t, state, got)
	assert.Equal(t, "MLP(3 -> 1)", meta["arch"])
	assert.Len(t, meta[serialization.MetadataChecksum], 64)
}

func TestSafeTensors_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, serialization.EncodeSafeTensors(&buf, map[string][]float64{"b": {2}, "a": {1}}, nil))

	file := buf.Bytes()
	headerSize := binary.LittleEndian.Uint64(file[:8])
	body := file[8+headerSize:]
	require.Len(t, body, 16)

	// Alphabetical order: a before b.
	assert.Equal(t, 1.0, math.Float64frombits(binary.LittleEndian.Uint64(body[:8])))
	assert.Equal(t, 2.0, math.Float64frombits(binary.LittleEndian.Uint64(body[8:])))
	assert.Contains(t, string(file[8:8+headerSize]), `"a":{"dtype":"F64","shape":[1],"data_offsets":[0,8]}`)
}

func TestSafeTensors_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, serialization.EncodeSafeTensors(&a, sampleState(), map[string]string{"k": "v"}))
	require.NoError(t, serialization.EncodeSafeTensors(&b, sampleState(), map[string]string{"k": "v"}))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestSafeTensors_CorruptedData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, serialization.EncodeSafeTensors(&buf, sampleState(), nil))

	file := buf.Bytes()
	file[len(file)-1] ^= 0xff

	_, _, err := serialization.DecodeSafeTensors(file)
	assert.ErrorIs(t, err, serialization.ErrChecksumMismatch)
}

func TestSafeTensors_InvalidName(t *testing.T) {
	var buf bytes.Buffer
	err := serialization.EncodeSafeTensors(&buf, map[string][]float64{"__metadata__": {1}}, nil)
	assert.ErrorIs(t, err, serialization.ErrInvalidTensorName)

	err = serialization.EncodeSafeTensors(&buf, map[string][]float64{"": {1}}, nil)
	assert.ErrorIs(t, err, serialization.ErrInvalidTensorName)
}

// encodeRaw builds a file from a literal header, bypassing the writer's checks.
func encodeRaw(header string, body []byte) []byte {
	file := make([]byte, 8, 8+len(header)+len(body))
	binary.LittleEndian.PutUint64(file, uint64(len(header)))
	file = append(file, header...)
	return append(file, body...)
}

func TestDecodeSafeTensors_Errors(t *testing.T) {
	eight := make([]byte, 8)

	tests := []struct {
		name string
		file []byte
		want error
	}{
		{"too short", []byte{1, 2}, serialization.ErrTruncated},
		{"truncated header", encodeRaw(`{"a":1}`, nil)[:10], serialization.ErrTruncated},
		{"dtype", encodeRaw(`{"a":{"dtype":"F32","shape":[2],"data_offsets":[0,8]}}`, eight), serialization.ErrUnsupportedDType},
		{"negative", encodeRaw(`{"a":{"dtype":"F64","shape":[1],"data_offsets":[-8,0]}}`, eight), serialization.ErrNegativeOffset},
		{"out of bounds", encodeRaw(`{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,16]}}`, eight), serialization.ErrOutOfBounds},
		{"shape", encodeRaw(`{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,8]}}`, eight), serialization.ErrShapeMismatch},
		{"shape overflow", encodeRaw(`{"a":{"dtype":"F64","shape":[2305843009213693953],"data_offsets":[0,8]}}`, eight), serialization.ErrShapeMismatch},
		{"shape product overflow", encodeRaw(`{"a":{"dtype":"F64","shape":[4294967296,4294967296],"data_offsets":[0,8]}}`, eight), serialization.ErrShapeMismatch},
		{"checksum", encodeRaw(`{"__metadata__":{"sha256":"00"}}`, nil), serialization.ErrChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, _, err = serialization.DecodeSafeTensors(tt.file)
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeSafeTensors_HeaderTooLarge(t *testing.T) {
	file := make([]byte, 16)
	binary.LittleEndian.PutUint64(file, serialization.MaxHeaderSize+1)

	_, _, err := serialization.DecodeSafeTensors(file)
	assert.ErrorIs(t, err, serialization.ErrHeaderTooLarge)
}

func TestDecodeSafeTensors_WithoutChecksum(t *testing.T) {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint64(body, math.Float64bits(-2.5))

	got, meta, err := serialization.DecodeSafeTensors(
		encodeRaw(`{"x":{"dtype":"F64","shape":[1],"data_offsets":[0,8]}}`, body))
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, []float64{-2.5}, got["x"])
}

func TestReadSafeTensors_MissingFile(t *testing.T) {
	_, _, err := serialization.ReadSafeTensors(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
