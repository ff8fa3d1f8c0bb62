// Package preprocess converts uploaded image bytes into the flat float32
// tensor the classifier expects.
package preprocess

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// Channels is the number of color channels in the model input.
const Channels = 3

// DecodeError reports that uploaded bytes could not be parsed as an image.
// It is a client-input error: retrying the same bytes cannot succeed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Tensor decodes raw image bytes and converts them to a size×size RGB tensor
// in NHWC layout with a batch dimension of one carried by the caller's tensor
// shape. Intensities stay in the raw 0–255 range; the model performs its own
// normalization internally. The image is resized, not cropped, so the aspect
// ratio is not preserved.
func Tensor(imageBytes []byte, size int) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	data := make([]float32, size*size*Channels)
	bounds := resized.Bounds()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*size + x) * Channels
			data[i] = float32(r >> 8)
			data[i+1] = float32(g >> 8)
			data[i+2] = float32(b >> 8)
		}
	}

	return data, nil
}
