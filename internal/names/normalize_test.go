package names

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
)

func TestToDisplay(t *testing.T) {
	n := New(nil)

	t.Run("Numeric Cells Are Not Names", func(t *testing.T) {
		assert.Equal(t, "", n.ToDisplay(grid.NumberCell(42)))
		assert.Equal(t, "", n.ToDisplay(grid.Cell{}))
	})

	t.Run("Strips Markers Keeps Accents", func(t *testing.T) {
		assert.Equal(t, "José Silva", n.ToDisplay(grid.TextCell("José Silva *")))
		assert.Equal(t, "Ana María", n.ToDisplay(grid.TextCell("  Ana   María  ")))
		assert.Equal(t, "Conceição", n.ToDisplay(grid.TextCell("(Conceição)")))
	})

	t.Run("Header Junk Is Rejected", func(t *testing.T) {
		assert.Equal(t, "", n.ToDisplay(grid.TextCell("Famílias")))
		assert.Equal(t, "", n.ToDisplay(grid.TextCell("NAME")))
		assert.Equal(t, "", n.ToDisplay(grid.TextCell("nome")))
	})

	t.Run("Custom Stop Words", func(t *testing.T) {
		custom := New([]string{"beneficiário"})
		assert.Equal(t, "", custom.ToDisplay(grid.TextCell("BENEFICIARIO")))
		// The default set no longer applies when a custom one is given.
		assert.Equal(t, "Nome", custom.ToDisplay(grid.TextCell("Nome")))
	})
}

func TestToKey(t *testing.T) {
	t.Run("Identity Folding", func(t *testing.T) {
		// All spellings of the same person fold to the same key.
		want := ToKey("José")
		assert.Equal(t, want, ToKey("JOSE"))
		assert.Equal(t, want, ToKey("jose "))
		assert.Equal(t, want, ToKey("José*"))
		assert.Equal(t, "jose", want)
	})

	t.Run("Whitespace Collapse", func(t *testing.T) {
		assert.Equal(t, "maria joao", ToKey("  Maria \t João "))
	})

	t.Run("Total Function", func(t *testing.T) {
		assert.Equal(t, "", ToKey(""))
		assert.Equal(t, "", ToKey("***"))
	})
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pb", Fold(grid.TextCell(" PB ")))
	assert.Equal(t, "a", Fold(grid.TextCell("A")))
	assert.Equal(t, "1", Fold(grid.NumberCell(1)))
	assert.Equal(t, "", Fold(grid.Cell{}))
}

func TestChooseBetterDisplay(t *testing.T) {
	t.Run("Diacritics Win", func(t *testing.T) {
		assert.Equal(t, "José", ChooseBetterDisplay("Jose", "José"))
		assert.Equal(t, "José", ChooseBetterDisplay("José", "Jose Maria"))
	})

	t.Run("Longer Wins Without Diacritics", func(t *testing.T) {
		assert.Equal(t, "Jose Maria", ChooseBetterDisplay("Jose", "Jose Maria"))
		assert.Equal(t, "Jose Maria", ChooseBetterDisplay("Jose Maria", "Jose"))
	})

	t.Run("Ties Keep Current", func(t *testing.T) {
		assert.Equal(t, "MARIA", ChooseBetterDisplay("MARIA", "Maria"))
		assert.Equal(t, "Ana", ChooseBetterDisplay("Ana", "Eva"))
	})
}
