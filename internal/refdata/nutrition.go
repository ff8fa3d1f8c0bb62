package refdata

import (
	"encoding/json"
	"fmt"
	"os"
)

// NutritionRecord is one entry of the nutrition table, keyed by the English
// machine name of a food class. A record whose matching step found no row in
// the source dataset has every field null — that is an expected state, not an
// error. Numeric fields are pointers so that missing source cells serialize
// as JSON null rather than zero.
type NutritionRecord struct {
	KoName         *string `json:"ko_name,omitempty"`
	SourceFoodName *string `json:"source_food_name"`
	Unit           *string `json:"unit"`

	CaloriesKcal *float64 `json:"calories_kcal"`
	CarbsG       *float64 `json:"carbs_g"`
	ProteinG     *float64 `json:"protein_g"`
	FatG         *float64 `json:"fat_g"`
	SugarsG      *float64 `json:"sugars_g"`
	SodiumMg     *float64 `json:"sodium_mg"`

	MoistureG            *float64 `json:"moisture_g"`
	AshG                 *float64 `json:"ash_g"`
	DietaryFiberG        *float64 `json:"dietary_fiber_g"`
	CalciumMg            *float64 `json:"calcium_mg"`
	IronMg               *float64 `json:"iron_mg"`
	PhosphorusMg         *float64 `json:"phosphorus_mg"`
	PotassiumMg          *float64 `json:"potassium_mg"`
	VitaminAUgRAE        *float64 `json:"vitamin_a_ug_rae"`
	RetinolUg            *float64 `json:"retinol_ug"`
	BetaCaroteneUg       *float64 `json:"beta_carotene_ug"`
	ThiaminMg            *float64 `json:"thiamin_mg"`
	RiboflavinMg         *float64 `json:"riboflavin_mg"`
	NiacinMg             *float64 `json:"niacin_mg"`
	VitaminCMg           *float64 `json:"vitamin_c_mg"`
	VitaminDUg           *float64 `json:"vitamin_d_ug"`
	CholesterolMg        *float64 `json:"cholesterol_mg"`
	SaturatedFattyAcidsG *float64 `json:"saturated_fatty_acids_g"`
	TransFattyAcidsG     *float64 `json:"trans_fatty_acids_g"`

	Allergens []string `json:"allergens,omitempty"`
}

// NutritionStore is the read-only nutrition table, loaded once at startup.
type NutritionStore struct {
	records map[string]NutritionRecord
}

// LoadNutrition reads the nutrition table from a JSON file mapping English
// machine names to records.
func LoadNutrition(path string) (*NutritionStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition table: %w", err)
	}

	var records map[string]NutritionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition table: %w", err)
	}

	return NewNutritionStore(records), nil
}

// NewNutritionStore builds a store from already-parsed records. The map is
// copied.
func NewNutritionStore(records map[string]NutritionRecord) *NutritionStore {
	s := &NutritionStore{records: make(map[string]NutritionRecord, len(records))}
	for k, v := range records {
		s.records[k] = v
	}
	return s
}

// Lookup returns the record for the given machine name. An absent key yields
// an all-null record: callers must treat that as a data-completeness gap, not
// a failure.
func (s *NutritionStore) Lookup(enName string) NutritionRecord {
	return s.records[enName]
}
