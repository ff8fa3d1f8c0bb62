// Package model wraps the ONNX food classifier. The model is loaded exactly
// once at startup and never reloaded; a load failure is fatal to the process.
package model

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/NPrawn/food-classifier/internal/catalog"
)

// LabelMismatchError reports that the model output vector length cannot be
// reconciled with the label catalog. It signals a catalog/model version skew
// in the deployment, not a problem with the request.
type LabelMismatchError struct {
	ModelClasses   int
	CatalogClasses int
}

func (e *LabelMismatchError) Error() string {
	return fmt.Sprintf("model output length (%d) != number of class names (%d)",
		e.ModelClasses, e.CatalogClasses)
}

// Prediction is the resolved top-1 result of one inference run.
type Prediction struct {
	EnName      string
	KoName      string
	Probability float32
}

// Classifier holds the loaded ONNX session and its preallocated tensor pair.
// The session and tensors are shared across requests; Classify serializes
// access with a mutex, so one inference runs at a time.
type Classifier struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	meta         Metadata
	catalog      *catalog.Catalog
}

// New initializes the ONNX runtime, loads the model artifact and its metadata,
// and verifies the model output length against the catalog. It fails — and the
// caller must treat that as fatal — rather than ever serving with a skewed
// model/catalog pair.
func New(modelPath, metadataPath string, cat *catalog.Catalog) (*Classifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	meta, err := loadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	if _, err := reconcile(make([]float32, meta.outputLen()), cat.Len()); err != nil {
		return nil, err
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Classifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		meta:         meta,
		catalog:      cat,
	}, nil
}

// ImageSize returns the spatial resolution the preprocessor must produce.
func (c *Classifier) ImageSize() int {
	return c.meta.ImageSize
}

// Classify runs one forward pass and resolves the top class. The input must
// hold exactly the number of values the model input shape requires. Inference
// is one blocking, non-cancelable unit of work.
func (c *Classifier) Classify(input []float32) (Prediction, error) {
	if len(input) != c.meta.inputLen() {
		return Prediction{}, fmt.Errorf("expected %d input values, got %d",
			c.meta.inputLen(), len(input))
	}

	probs, err := c.run(input)
	if err != nil {
		return Prediction{}, err
	}

	probs, err = reconcile(probs, c.catalog.Len())
	if err != nil {
		return Prediction{}, err
	}

	topIdx := argmax(probs)
	enName := c.catalog.EnName(topIdx)

	return Prediction{
		EnName:      enName,
		KoName:      c.catalog.DisplayName(enName),
		Probability: probs[topIdx],
	}, nil
}

func (c *Classifier) run(input []float32) ([]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.inputTensor.GetData(), input)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := c.outputTensor.GetData()
	probs := make([]float32, len(out))
	copy(probs, out)
	return probs, nil
}

// reconcile aligns a raw output vector to the catalog length. An exact match
// passes through unchanged. One extra element is dropped from the end: the
// model was trained with a reserved background class appended after the
// catalog classes. Any other length is a version skew and must never be
// silently truncated or padded.
func reconcile(probs []float32, catalogLen int) ([]float32, error) {
	switch len(probs) {
	case catalogLen:
		return probs, nil
	case catalogLen + 1:
		return probs[:catalogLen], nil
	default:
		return nil, &LabelMismatchError{
			ModelClasses:   len(probs),
			CatalogClasses: catalogLen,
		}
	}
}

// argmax returns the index of the largest value; ties go to the lowest index.
func argmax(probs []float32) int {
	maxIdx := 0
	maxVal := probs[0]
	for i, v := range probs {
		if v > maxVal {
			maxVal = v
			maxIdx = i
		}
	}
	return maxIdx
}

// Close releases the session, tensors, and the ONNX environment.
func (c *Classifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}
