package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSuggestionsDirectArray(t *testing.T) {
	raw := `[{"id": 7, "relationshipType": "supports", "reason": "both cover tides", "confidence": 0.8}]`

	items := DecodeSuggestions(raw)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].Id)
	assert.Equal(t, "supports", items[0].RelationshipType)
	assert.Equal(t, "both cover tides", items[0].Reason)
	assert.InDelta(t, 0.8, items[0].Confidence, 1e-9)
}

func TestDecodeSuggestionsWrappedInProse(t *testing.T) {
	raw := "Sure! Here are some ideas:\n```json\n" +
		`[{"sourceId": 1, "targetId": 2, "relationshipType": "related-to", "confidence": 1.4}]` +
		"\n```\nLet me know if you need more."

	items := DecodeSuggestions(raw)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].SourceId)
	assert.Equal(t, int64(2), items[0].TargetId)
	assert.InDelta(t, 1.4, items[0].Confidence, 1e-9)
}

func TestDecodeSuggestionsWrappedInObject(t *testing.T) {
	raw := `{"suggestions": [{"id": 3, "confidence": 0.5}], "note": "done"}`

	items := DecodeSuggestions(raw)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Id)
}

func TestDecodeSuggestionsMalformed(t *testing.T) {
	for _, raw := range []string{
		"Sure! Here are some ideas: not json",
		"",
		"   ",
		"[{broken",
		"no brackets at all",
	} {
		items := DecodeSuggestions(raw)
		assert.NotNil(t, items, raw)
		assert.Empty(t, items, raw)
	}
}

func TestDecodeSuggestionsSkipsUnparsableBrackets(t *testing.T) {
	raw := `I looked at [several notes] and propose: [{"id": 4, "confidence": 0.9}]`

	items := DecodeSuggestions(raw)
	require.Len(t, items, 1)
	assert.Equal(t, int64(4), items[0].Id)
}

func TestExtractJSONArray(t *testing.T) {
	sub, ok := ExtractJSONArray(`prefix [{"reason": "uses ] inside a string"}] suffix`)
	require.True(t, ok)
	assert.Equal(t, `[{"reason": "uses ] inside a string"}]`, sub)

	sub, ok = ExtractJSONArray(`nested [1, [2, 3], 4] tail`)
	require.True(t, ok)
	assert.Equal(t, `[1, [2, 3], 4]`, sub)

	_, ok = ExtractJSONArray("never closes [")
	assert.False(t, ok)

	_, ok = ExtractJSONArray("plain text")
	assert.False(t, ok)
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0.0, ClampConfidence(-0.3))
	assert.Equal(t, 1.0, ClampConfidence(1.7))
	assert.Equal(t, 0.65, ClampConfidence(0.65))
}
