package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const nutritionFixture = `{
  "Bulgogi": {
    "ko_name": "불고기",
    "source_food_name": "돼지불고기_간장",
    "unit": "100g",
    "calories_kcal": 250.0,
    "carbs_g": 8.5,
    "protein_g": 18.2,
    "fat_g": 15.1,
    "sugars_g": null,
    "sodium_mg": 520.0,
    "allergens": []
  },
  "Dried_Pollack_Soup": {
    "ko_name": "북어국",
    "source_food_name": null,
    "unit": null,
    "calories_kcal": null,
    "allergens": []
  }
}`

func loadNutritionFixture(t *testing.T) *NutritionStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrition.json")
	require.NoError(t, os.WriteFile(path, []byte(nutritionFixture), 0o644))
	s, err := LoadNutrition(path)
	require.NoError(t, err)
	return s
}

func TestNutritionLookup(t *testing.T) {
	s := loadNutritionFixture(t)

	rec := s.Lookup("Bulgogi")
	require.NotNil(t, rec.Unit)
	require.Equal(t, "100g", *rec.Unit)
	require.NotNil(t, rec.CaloriesKcal)
	require.Equal(t, 250.0, *rec.CaloriesKcal)
	require.Nil(t, rec.SugarsG)
	require.Nil(t, rec.VitaminCMg)
}

func TestNutritionLookupUnresolvedRecord(t *testing.T) {
	s := loadNutritionFixture(t)

	// Present in the table, but the offline match found no source row.
	// Not an error: every field except ko_name stays null.
	rec := s.Lookup("Dried_Pollack_Soup")
	require.NotNil(t, rec.KoName)
	require.Nil(t, rec.SourceFoodName)
	require.Nil(t, rec.Unit)
	require.Nil(t, rec.CaloriesKcal)
}

func TestNutritionLookupAbsentKey(t *testing.T) {
	s := loadNutritionFixture(t)

	rec := s.Lookup("Bibimbap")
	require.Nil(t, rec.Unit)
	require.Nil(t, rec.CaloriesKcal)
	require.Nil(t, rec.SourceFoodName)
}

func TestNutritionLookupIdempotent(t *testing.T) {
	s := loadNutritionFixture(t)

	first := s.Lookup("Bulgogi")
	second := s.Lookup("Bulgogi")
	require.Equal(t, first, second)

	// Mutating a returned record must not leak into the store.
	mutated := 999.0
	first.CaloriesKcal = &mutated
	require.Equal(t, 250.0, *s.Lookup("Bulgogi").CaloriesKcal)
}

func TestLoadNutritionErrors(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`[1,2,3]`), 0o644))

	_, err := LoadNutrition(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	_, err = LoadNutrition(badPath)
	require.Error(t, err)
}
