package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenProducesOneTokenPerValue(t *testing.T) {
	kw, err := ParseKeywords(map[string]any{"type": []any{"image", "video"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"type=image", "type=video"}, kw.Flatten())
}

func TestFlattenScalarEqualsOneElementSequence(t *testing.T) {
	scalar, err := ParseKeywords(map[string]any{"category": "desktop"})
	require.NoError(t, err)
	seq, err := ParseKeywords(map[string]any{"category": []any{"desktop"}})
	require.NoError(t, err)
	assert.Equal(t, seq.Flatten(), scalar.Flatten())
	assert.Equal(t, []string{"category=desktop"}, scalar.Flatten())
}

func TestFlattenIsOrderStable(t *testing.T) {
	kw := Keywords{
		"zeta":  {"one"},
		"alpha": {"two", "three"},
		"mid":   {"four"},
	}
	want := []string{"alpha=two", "alpha=three", "mid=four", "zeta=one"}
	for range 10 {
		assert.Equal(t, want, kw.Flatten())
	}
}

func TestFlattenKeepsDuplicateValuesAcrossCategories(t *testing.T) {
	kw := Keywords{"device": {"desktop"}, "platform": {"desktop"}}
	assert.Equal(t, []string{"device=desktop", "platform=desktop"}, kw.Flatten())
}

func TestFlattenEmptyCategoryContributesNoTokens(t *testing.T) {
	kw := Keywords{"interest": {}}
	assert.Empty(t, kw.Flatten())
	// the category itself is retained: absent and empty are distinct
	_, present := kw["interest"]
	assert.True(t, present)
}

func TestParseKeywordsCoercesScalars(t *testing.T) {
	kw, err := ParseKeywords(map[string]any{
		"count":   float64(3),
		"enabled": true,
		"name":    "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, kw["count"])
	assert.Equal(t, []string{"true"}, kw["enabled"])
	assert.Equal(t, []string{"abc"}, kw["name"])
}

func TestParseKeywordsRejectsNonMapping(t *testing.T) {
	_, err := ParseKeywords("nope")
	assert.Error(t, err)
}

func TestParseFiltersAndFields(t *testing.T) {
	f, err := ParseFilters(map[string]any{
		"device": map[string]any{"type": []any{"desktop", "mobile"}},
		"geo":    map[string]any{"country": "pl"},
	})
	require.NoError(t, err)

	fields := f.Fields("filters:require")
	assert.Equal(t, []string{"desktop", "mobile"}, fields["filters:require:device:type"])
	assert.Equal(t, []string{"pl"}, fields["filters:require:geo:country"])
}

func TestParseFiltersNilYieldsEmpty(t *testing.T) {
	f, err := ParseFilters(nil)
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "banner:keywords:type", FieldPath("banner", "keywords", "type"))
}
