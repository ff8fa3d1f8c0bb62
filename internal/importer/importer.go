// Package importer builds the nutrition reference table consumed by the
// server. It is an offline, one-time tool: it reads the MFDS nutrition CSV
// and the class name files, matches each food class to its best CSV row, and
// writes nutrition.json. Fuzzy matching lives here and only here; the server
// does exact-key lookups against the finished table.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/NPrawn/food-classifier/internal/refdata"
)

// MissingClass is a class no CSV row could be matched to. It still gets an
// unresolved record in the output, but the operator should review it.
type MissingClass struct {
	EnName string
	KoName string
}

// Report summarizes one build run.
type Report struct {
	Classes   int
	Matched   int
	Missing   []MissingClass
	BuildTime time.Time
}

// Build reads the MFDS CSV and the class name files, matches every class,
// and writes the nutrition table to outPath. When cp949 is set the CSV is
// decoded from CP949/EUC-KR, the encoding MFDS downloads often ship in.
//
// Every catalog class appears in the output. Unmatched classes get an
// explicit unresolved record (null source name, null unit, null nutrients)
// rather than being omitted: the server treats that as a data gap, not an
// error, and the report lists them for manual follow-up.
func Build(csvPath, enPath, koPath, outPath string, cp949 bool) (*Report, error) {
	enNames, koNames, err := loadClassNames(enPath, koPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if cp949 {
		reader = transform.NewReader(f, korean.EUCKR.NewDecoder())
	}

	rows, err := ReadRows(reader)
	if err != nil {
		return nil, err
	}
	slog.Info("csv parsed", "rows", len(rows))

	m := newMatcher(rows)
	report := &Report{Classes: len(enNames), BuildTime: time.Now().UTC()}
	table := make(map[string]refdata.NutritionRecord, len(enNames))

	for _, enName := range enNames {
		var koPtr *string
		koName, hasKo := koNames[enName]
		if hasKo {
			ko := koName
			koPtr = &ko
		}

		row, ok := m.match(enName, koName)
		if !ok {
			report.Missing = append(report.Missing, MissingClass{EnName: enName, KoName: koName})
			table[enName] = refdata.NutritionRecord{KoName: koPtr}
			continue
		}

		// Allergens are not in the MFDS CSV; allergens.json is maintained
		// separately and the record's allergen field stays empty here.
		record := row.Record
		record.KoName = koPtr
		foodName := row.FoodName
		record.SourceFoodName = &foodName

		table[enName] = record
		report.Matched++
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode nutrition table: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write nutrition table: %w", err)
	}

	return report, nil
}

func loadClassNames(enPath, koPath string) ([]string, map[string]string, error) {
	enData, err := os.ReadFile(enPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read class names: %w", err)
	}
	var enNames []string
	if err := json.Unmarshal(enData, &enNames); err != nil {
		return nil, nil, fmt.Errorf("parse class names: %w", err)
	}
	if len(enNames) == 0 {
		return nil, nil, fmt.Errorf("class name list %s is empty", enPath)
	}

	koData, err := os.ReadFile(koPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read display names: %w", err)
	}
	var koNames map[string]string
	if err := json.Unmarshal(koData, &koNames); err != nil {
		return nil, nil, fmt.Errorf("parse display names: %w", err)
	}

	return enNames, koNames, nil
}
