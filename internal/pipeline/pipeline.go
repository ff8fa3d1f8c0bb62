// Package pipeline orchestrates one prediction: preprocess the upload, run
// the classifier, and enrich the top class with nutrition and allergen data.
package pipeline

import (
	"github.com/NPrawn/food-classifier/internal/model"
	"github.com/NPrawn/food-classifier/internal/preprocess"
	"github.com/NPrawn/food-classifier/internal/refdata"
)

// Classifier is the inference surface the pipeline needs.
type Classifier interface {
	Classify(input []float32) (model.Prediction, error)
}

// Result is the complete response for one classified image.
type Result struct {
	EnName      string                  `json:"en_name"`
	KoName      string                  `json:"ko_name"`
	Probability float32                 `json:"probability"`
	Nutrition   refdata.NutritionRecord `json:"nutrition"`
	Allergens   []string                `json:"allergens"`
}

// Pipeline wires the preprocessor, classifier, and reference stores together.
// All of its dependencies are immutable after startup, so a single Pipeline
// serves concurrent requests.
type Pipeline struct {
	classifier Classifier
	nutrition  *refdata.NutritionStore
	allergens  *refdata.AllergenStore
	imageSize  int
}

// New builds a Pipeline. imageSize is the spatial resolution the classifier's
// model expects.
func New(c Classifier, n *refdata.NutritionStore, a *refdata.AllergenStore, imageSize int) *Pipeline {
	return &Pipeline{
		classifier: c,
		nutrition:  n,
		allergens:  a,
		imageSize:  imageSize,
	}
}

// Enrich classifies raw image bytes and assembles the enriched result.
// A *preprocess.DecodeError or *model.LabelMismatchError from the inner
// stages propagates unchanged. The two reference lookups cannot fail: a
// machine name absent from a table resolves to an empty record or list.
func (p *Pipeline) Enrich(imageBytes []byte) (*Result, error) {
	input, err := preprocess.Tensor(imageBytes, p.imageSize)
	if err != nil {
		return nil, err
	}

	pred, err := p.classifier.Classify(input)
	if err != nil {
		return nil, err
	}

	return &Result{
		EnName:      pred.EnName,
		KoName:      pred.KoName,
		Probability: pred.Probability,
		Nutrition:   p.nutrition.Lookup(pred.EnName),
		Allergens:   p.allergens.Lookup(pred.EnName),
	}, nil
}
