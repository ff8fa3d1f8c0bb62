package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	enPath := writeFile(t, dir, "class_names_en.json", `["Bulgogi","Kimchi_Fried_Rice"]`)
	koPath := writeFile(t, dir, "class_names_ko.json", `{"Bulgogi":"불고기"}`)

	cat, err := Load(enPath, koPath)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())
	require.Equal(t, "Bulgogi", cat.EnName(0))
	require.Equal(t, "Kimchi_Fried_Rice", cat.EnName(1))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	enPath := writeFile(t, dir, "en.json", `["Bulgogi"]`)
	koPath := writeFile(t, dir, "ko.json", `{}`)
	emptyPath := writeFile(t, dir, "empty.json", `[]`)
	badPath := writeFile(t, dir, "bad.json", `{not json`)

	tests := []struct {
		name   string
		enPath string
		koPath string
	}{
		{"missing en file", filepath.Join(dir, "nope.json"), koPath},
		{"empty class list", emptyPath, koPath},
		{"malformed en file", badPath, koPath},
		{"malformed ko file", enPath, badPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.enPath, tt.koPath)
			require.Error(t, err)
		})
	}
}

func TestDisplayNameFallback(t *testing.T) {
	cat := New(
		[]string{"Bulgogi", "Bibimbap"},
		map[string]string{"Bulgogi": "불고기"},
	)

	require.Equal(t, "불고기", cat.DisplayName("Bulgogi"))
	// No localized entry: the machine name comes back verbatim.
	require.Equal(t, "Bibimbap", cat.DisplayName("Bibimbap"))
}

func TestNewCopiesInputs(t *testing.T) {
	enNames := []string{"Bulgogi"}
	koNames := map[string]string{"Bulgogi": "불고기"}
	cat := New(enNames, koNames)

	enNames[0] = "mutated"
	koNames["Bulgogi"] = "mutated"

	require.Equal(t, "Bulgogi", cat.EnName(0))
	require.Equal(t, "불고기", cat.DisplayName("Bulgogi"))
}
