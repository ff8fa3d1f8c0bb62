package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata describes the serialized model artifact: tensor shapes and the
// spatial resolution the preprocessor must produce. It is written alongside
// the .onnx file when the model is exported.
type Metadata struct {
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
	ImageSize   int     `json:"image_size"`
}

func loadMetadata(path string) (Metadata, error) {
	var meta Metadata

	data, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("failed to read metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if len(meta.InputShape) == 0 || len(meta.OutputShape) == 0 {
		return meta, fmt.Errorf("metadata %s is missing tensor shapes", path)
	}
	if meta.ImageSize <= 0 {
		return meta, fmt.Errorf("metadata %s has invalid image_size %d", path, meta.ImageSize)
	}

	return meta, nil
}

// outputLen returns the number of classes in the model output vector.
func (m Metadata) outputLen() int {
	n := int64(1)
	for _, d := range m.OutputShape {
		n *= d
	}
	return int(n)
}

// inputLen returns the number of float32 values one input tensor holds.
func (m Metadata) inputLen() int {
	n := int64(1)
	for _, d := range m.InputShape {
		n *= d
	}
	return int(n)
}
