package importer

import (
	"strings"
	"unicode/utf8"
)

// manualFoodNames maps class machine names to the exact CSV food name to use
// when automatic matching fails. Curated by hand against the MFDS dataset.
var manualFoodNames = map[string]string{
	"Dried_Pollack_Soup":                 "북어국",
	"Fried_Chicken":                      "닭튀김_황금올리브 치킨",
	"Gochujang_Stir_Fried_Dried_Pollack": "오징어채볶음",
	"Ricecake_Dumpling_Soup":             "떡만두국",
	"Stir_Fried_Potato":                  "감자볶음_채소",
	"Young_Radish_Cold_Noodles":          "국수_열무김치",
	"Bossam":                             "제육(돼지고기 수육)",
	"Bulgogi":                            "돼지불고기_간장",
	"Dumplings":                          "고기만두",
	"Fish_Pancake":                       "생선전_동태",
	"Kimchi_Fried_Rice":                  "볶음밥_김치_돼지고기",
	"Seasoned_Chicken":                   "닭튀김_양념 치킨",
	"Stir_Fried_Zucchini":                "애호박 볶음",
}

// cookingSuffixes are cooking-method suffixes stripped from a Korean dish
// name when a containment search with the full name finds nothing. Only the
// first matching suffix is stripped, once.
var cookingSuffixes = []string{
	"무침", "볶음", "구이", "조림", "국", "탕", "찜", "덮밥",
	"죽", "전골", "전", "튀김", "볶음밥", "김밥", "나물",
}

// minBaseRunes is the minimum length a suffix-stripped name must keep to be
// worth searching with; shorter bases match far too broadly.
const minBaseRunes = 2

type matcher struct {
	rows []Row
}

func newMatcher(rows []Row) *matcher {
	return &matcher{rows: rows}
}

// match picks the best CSV row for a class. The search order is: containment
// of the full Korean name, then containment of the suffix-stripped name, then
// the manual override for the machine name. Among containment candidates an
// exact food-name match wins; otherwise the first candidate does.
func (m *matcher) match(enName, koName string) (Row, bool) {
	if koName != "" {
		candidates := m.containing(koName)
		if len(candidates) == 0 {
			if base := stripSuffix(koName); base != koName && utf8.RuneCountInString(base) >= minBaseRunes {
				candidates = m.containing(base)
			}
		}
		if len(candidates) > 0 {
			for _, row := range candidates {
				if row.FoodName == koName {
					return row, true
				}
			}
			return candidates[0], true
		}
	}

	if manual, ok := manualFoodNames[enName]; ok {
		for _, row := range m.rows {
			if row.FoodName == manual {
				return row, true
			}
		}
	}

	return Row{}, false
}

func (m *matcher) containing(name string) []Row {
	var out []Row
	for _, row := range m.rows {
		if strings.Contains(row.FoodName, name) {
			out = append(out, row)
		}
	}
	return out
}

func stripSuffix(name string) string {
	for _, suffix := range cookingSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
