// Package serialization saves and loads model parameters as SafeTensors files.
//
// Only 1-D float64 tensors are written, which is all a scalar network needs:
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	  [Tensor data: little-endian float64, tensors in name order]
//
// The writer stores the SHA-256 of the data section under the "sha256"
// metadata key; the reader verifies it when present.
//
// Example usage:
//
//	// Save a model
//	err := serialization.WriteSafeTensors("model.safetensors", model.StateDict(), nil)
//
//	// Load a model
//	state, _, err := serialization.ReadSafeTensors("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = model.LoadStateDict(state)
package serialization
