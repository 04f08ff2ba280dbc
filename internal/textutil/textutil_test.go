// SPDX-License-Identifier: Apache-2.0

package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cirscan/cirscan/internal/textutil"
)

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "a b c", textutil.NormalizeValue("  a\n\n b \nc  "))
	assert.Equal(t, "", textutil.NormalizeValue("\n \n"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Bearing Failure", textutil.TitleCase("bearing FAILURE"))
	assert.Equal(t, "Cir Id", textutil.TitleCase("  CIR   id "))
	assert.Equal(t, "", textutil.TitleCase(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", textutil.Truncate("abcdef", 3))
	assert.Equal(t, "ab", textutil.Truncate("ab", 3))
	assert.Equal(t, "äö", textutil.Truncate("äöü", 2), "counts runes, not bytes")
}

func TestFirstLines(t *testing.T) {
	assert.Equal(t, "a\nb", textutil.FirstLines("a\nb\nc", 2))
	assert.Equal(t, "a", textutil.FirstLines("a", 5))
}

func TestPresentTerms(t *testing.T) {
	got := textutil.PresentTerms("gearbox bearing wear noted on the gearbox", []string{"blade", "gearbox", "Bearing", "gearbox"})
	assert.Equal(t, []string{"Gearbox", "Bearing"}, got)
	assert.Empty(t, textutil.PresentTerms("", []string{"blade"}))
}

func TestLastGroup(t *testing.T) {
	assert.Equal(t, "b", textutil.LastGroup([]string{"full", "a", " b "}))
	assert.Equal(t, "a", textutil.LastGroup([]string{"full", "a", ""}))
	assert.Equal(t, "full", textutil.LastGroup([]string{"full"}))
	assert.Equal(t, "", textutil.LastGroup(nil))
}
