package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(map[string]map[string]string{
		"en": {
			"greeting": "Hello, {{name}}!",
			"goodbye":  "Goodbye.",
		},
		"de-DE": {
			"greeting": "Hallo, {{name}}!",
		},
	})
	require.NoError(t, err)
	return tbl
}

func TestNewTable_Invalid(t *testing.T) {
	_, err := NewTable(nil)
	assert.Error(t, err)

	_, err = NewTable(map[string]map[string]string{"not a tag": {}})
	assert.Error(t, err)
}

func TestTranslate_ExactLocale(t *testing.T) {
	s, ok := table(t).Translate("de-DE", "greeting", map[string]string{"name": "Kim"})
	require.True(t, ok)
	assert.Equal(t, "Hallo, Kim!", s)
}

func TestTranslate_RegionFallback(t *testing.T) {
	// en-US is not in the table; the matcher falls back to en.
	s, ok := table(t).Translate("en-US", "goodbye", nil)
	require.True(t, ok)
	assert.Equal(t, "Goodbye.", s)
}

func TestTranslate_MissingKey(t *testing.T) {
	_, ok := table(t).Translate("en", "nonexistent", nil)
	assert.False(t, ok)
}

func TestTranslate_BadLocale(t *testing.T) {
	_, ok := table(t).Translate("!!", "greeting", nil)
	assert.False(t, ok)
}

func TestTranslate_MultipleParams(t *testing.T) {
	tbl, err := NewTable(map[string]map[string]string{
		"en": {"order": "{{count}} {{item}} ordered"},
	})
	require.NoError(t, err)

	s, ok := tbl.Translate("en", "order", map[string]string{"count": "2", "item": "pizzas"})
	require.True(t, ok)
	assert.Equal(t, "2 pizzas ordered", s)
}
