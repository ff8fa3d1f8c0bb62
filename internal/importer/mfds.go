package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/NPrawn/food-classifier/internal/refdata"
)

// Column headers of the MFDS integrated food nutrition CSV
// (식품의약품안전처 통합식품영양성분정보).
const (
	colFoodName = "식품명"
	colUnit     = "영양성분함량기준량"
)

// nutrientColumns maps each CSV nutrient header to the record field it fills.
var nutrientColumns = map[string]func(*refdata.NutritionRecord, *float64){
	"에너지(kcal)":       func(r *refdata.NutritionRecord, v *float64) { r.CaloriesKcal = v },
	"탄수화물(g)":         func(r *refdata.NutritionRecord, v *float64) { r.CarbsG = v },
	"단백질(g)":          func(r *refdata.NutritionRecord, v *float64) { r.ProteinG = v },
	"지방(g)":           func(r *refdata.NutritionRecord, v *float64) { r.FatG = v },
	"당류(g)":           func(r *refdata.NutritionRecord, v *float64) { r.SugarsG = v },
	"나트륨(mg)":         func(r *refdata.NutritionRecord, v *float64) { r.SodiumMg = v },
	"수분(g)":           func(r *refdata.NutritionRecord, v *float64) { r.MoistureG = v },
	"회분(g)":           func(r *refdata.NutritionRecord, v *float64) { r.AshG = v },
	"식이섬유(g)":         func(r *refdata.NutritionRecord, v *float64) { r.DietaryFiberG = v },
	"칼슘(mg)":          func(r *refdata.NutritionRecord, v *float64) { r.CalciumMg = v },
	"철(mg)":           func(r *refdata.NutritionRecord, v *float64) { r.IronMg = v },
	"인(mg)":           func(r *refdata.NutritionRecord, v *float64) { r.PhosphorusMg = v },
	"칼륨(mg)":          func(r *refdata.NutritionRecord, v *float64) { r.PotassiumMg = v },
	"비타민 A(μg RAE)":   func(r *refdata.NutritionRecord, v *float64) { r.VitaminAUgRAE = v },
	"레티놀(μg)":         func(r *refdata.NutritionRecord, v *float64) { r.RetinolUg = v },
	"베타카로틴(μg)":       func(r *refdata.NutritionRecord, v *float64) { r.BetaCaroteneUg = v },
	"티아민(mg)":         func(r *refdata.NutritionRecord, v *float64) { r.ThiaminMg = v },
	"리보플라빈(mg)":       func(r *refdata.NutritionRecord, v *float64) { r.RiboflavinMg = v },
	"니아신(mg)":         func(r *refdata.NutritionRecord, v *float64) { r.NiacinMg = v },
	"비타민 C(mg)":       func(r *refdata.NutritionRecord, v *float64) { r.VitaminCMg = v },
	"비타민 D(μg)":       func(r *refdata.NutritionRecord, v *float64) { r.VitaminDUg = v },
	"콜레스테롤(mg)":       func(r *refdata.NutritionRecord, v *float64) { r.CholesterolMg = v },
	"포화지방산(g)":        func(r *refdata.NutritionRecord, v *float64) { r.SaturatedFattyAcidsG = v },
	"트랜스지방산(g)":       func(r *refdata.NutritionRecord, v *float64) { r.TransFattyAcidsG = v },
}

// Row is one food entry parsed from the MFDS CSV: the Korean food name plus
// a nutrition record with the unit and all nutrient cells filled in. Name
// fields and allergens are assigned later when a class is matched to the row.
type Row struct {
	FoodName string
	Record   refdata.NutritionRecord
}

// ReadRows parses the MFDS CSV. Columns are located by header name, so
// column order and extra columns in the source do not matter. Rows with an
// empty food name are skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	if _, ok := colIdx[colFoodName]; !ok {
		return nil, fmt.Errorf("csv is missing required column %q", colFoodName)
	}
	if _, ok := colIdx[colUnit]; !ok {
		return nil, fmt.Errorf("csv is missing required column %q", colUnit)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		name := strings.TrimSpace(cell(record, colIdx[colFoodName]))
		if name == "" {
			continue
		}

		row := Row{FoodName: name}
		if unit := strings.TrimSpace(cell(record, colIdx[colUnit])); unit != "" {
			row.Record.Unit = &unit
		}
		for column, assign := range nutrientColumns {
			idx, ok := colIdx[column]
			if !ok {
				continue
			}
			assign(&row.Record, parseCell(cell(record, idx)))
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseCell converts a CSV cell to a nullable float. Empty cells, "-"
// placeholders, and anything non-numeric become nil: the source data has
// plenty of gaps and they must stay explicit nulls downstream.
func parseCell(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
