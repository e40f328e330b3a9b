package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{EntryRecorded, ExitRecorded, InvalidType, InvalidBody, InvalidID, EntryDeleted, AllCleared}

func TestLoad_EmbeddedCatalogIsComplete(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)

	for _, locale := range []string{"ta", "en"} {
		require.True(t, cat.Has(locale), locale)
		for _, key := range allKeys {
			assert.Contains(t, cat[locale], key, "%s/%s", locale, key)
		}
	}
	assert.False(t, cat.Has("fr"))
}

func TestTranslator_Fallback(t *testing.T) {
	cat := Catalog{
		"en": {"a": "A-en", "b": "B-en"},
		"ta": {"a": "A-ta"},
	}

	ta := cat.For("ta")
	assert.Equal(t, "ta", ta.Locale())
	assert.Equal(t, "A-ta", ta.T("a"))
	assert.Equal(t, "B-en", ta.T("b"))
	assert.Equal(t, "c", ta.T("c"))
	assert.Equal(t, "A-en", cat.For("fr").T("a"))
}

func TestLoad_OverrideMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[en]
entry_recorded = "Welcome in"

[fr]
entry_recorded = "Entrée enregistrée"
`), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Welcome in", cat.For("en").T(EntryRecorded))
	assert.Equal(t, "Exit recorded successfully", cat.For("en").T(ExitRecorded))
	assert.Equal(t, "Entrée enregistrée", cat.For("fr").T(EntryRecorded))
	assert.Equal(t, "Record deleted", cat.For("fr").T(EntryDeleted))
	assert.Equal(t, "பதிவு நீக்கப்பட்டது", cat.For("ta").T(EntryDeleted))
}

func TestLoad_OverrideErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[en\nx ="), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
