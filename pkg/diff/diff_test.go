package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
)

func TestTextsBasic(t *testing.T) {
	result := Texts("The quick brown fox", "The quick red fox")

	assert.Greater(t, result.Inserted, 0)
	assert.Greater(t, result.Deleted, 0)

	var ops []string
	for _, c := range result.Changes {
		ops = append(ops, c.Op)
	}
	assert.Contains(t, ops, "insert")
	assert.Contains(t, ops, "delete")
	assert.Contains(t, ops, "equal")
}

func TestTextsIdentical(t *testing.T) {
	result := Texts("same content", "same content")

	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 0, result.Deleted)
	assert.Empty(t, result.Patch)
}

// 补丁应用到旧文本后应还原出新文本
func TestPropertyPatchRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("patch(from) == to", prop.ForAll(
		func(from, to string) bool {
			result := Texts(from, to)

			dmp := diffmatchpatch.New()
			patches, err := dmp.PatchFromText(result.Patch)
			if err != nil {
				return false
			}
			applied, flags := dmp.PatchApply(patches, from)
			for _, ok := range flags {
				if !ok {
					return false
				}
			}
			return applied == to
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("insert and delete counts match length delta", prop.ForAll(
		func(from, to string) bool {
			result := Texts(from, to)
			delta := len([]rune(to)) - len([]rune(from))
			return result.Inserted-result.Deleted == delta
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestUnifiedMarksChangedLines(t *testing.T) {
	from := "alpha\nbravo\ncharlie\n"
	to := "alpha\nbravo two\ncharlie\n"

	out := Unified(from, to)

	assert.Contains(t, out, "+")
	assert.True(t, strings.Contains(out, "bravo"))
}

func TestUnifiedCollapsesLongContext(t *testing.T) {
	lines := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		lines = append(lines, "line")
	}
	from := strings.Join(lines, "\n")
	to := from + "\nnew tail"

	out := Unified(from, to)

	assert.Contains(t, out, "lines)")
	assert.Contains(t, out, "+ new tail")
}

func TestHasChanges(t *testing.T) {
	assert.False(t, HasChanges("a", "a"))
	assert.True(t, HasChanges("a", "b"))
}
