// =============================================================================
// Monthly Meals Report - Name Normalization
// =============================================================================
//
// The attendance sheets spell the same person several different ways:
// "José Silva", "JOSE SILVA", "jose silva *". This module decides when two
// spellings are the same person and which spelling to keep.
//
// Two independent transforms, both total functions:
//   - ToDisplay : raw cell -> cleaned human-readable spelling
//   - ToKey     : display  -> fold-insensitive identity key
//
// Two display strings with the same key are the same person. The key fold
// (lowercase + NFD + strip combining marks) follows the x/text transform
// chain; it is the only internationalization this tool does.
//
// =============================================================================

package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
)

// stripMarks decomposes, drops combining diacritical marks, and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DefaultStopWords are the header-junk labels that must never be treated as
// a person's name. The source sheets mix Portuguese and English headers.
var DefaultStopWords = []string{"familias", "families", "family", "nome", "name"}

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer cleans raw name cells and folds them to identity keys.
// The stop-word set is configurable; entries are compared after key folding,
// so accents and case in the configuration do not matter.
type Normalizer struct {
	stopWords map[string]struct{}
}

// New builds a Normalizer with the given stop words. A nil or empty list
// falls back to DefaultStopWords.
func New(stopWords []string) *Normalizer {
	if len(stopWords) == 0 {
		stopWords = DefaultStopWords
	}

	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		if folded := ToKey(w); folded != "" {
			set[folded] = struct{}{}
		}
	}

	return &Normalizer{stopWords: set}
}

// ToDisplay converts a raw name cell into a cleaned display spelling.
//
// Numeric cells yield "" (names must not be numeric). Text is NFC
// normalized, stripped of every rune that is not a letter, digit, or
// whitespace (which removes markers such as "*" while keeping accented
// letters), whitespace-collapsed, and trimmed. A result whose identity key
// is a stop word also yields "", which rejects mis-detected header rows.
func (n *Normalizer) ToDisplay(cell grid.Cell) string {
	if cell.Kind != grid.Text {
		return ""
	}

	s := norm.NFC.String(cell.Str)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	s = collapseSpace(s)

	if s == "" {
		return ""
	}
	if _, junk := n.stopWords[ToKey(s)]; junk {
		return ""
	}

	return s
}

// ToKey folds a display spelling into the identity key: lowercase, strip
// diacritics, drop everything that is not a letter, digit, or whitespace,
// collapse whitespace.
func ToKey(display string) string {
	s := strings.ToLower(display)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)

	return collapseSpace(s)
}

// Fold is the fold applied to marker cells (absence codes, the PB marker,
// sheet names). It is the same fold as the identity key.
func Fold(cell grid.Cell) string {
	return ToKey(cell.String())
}

// =============================================================================
// SPELLING TIE-BREAK
// =============================================================================

// ChooseBetterDisplay picks the better of two spellings for the same key.
// Exactly one containing a diacritic wins; otherwise the longer one wins;
// ties keep current. Diacritics and fuller names are assumed to be the more
// carefully typed versions.
func ChooseBetterDisplay(current, candidate string) string {
	curMarks := hasDiacritic(current)
	candMarks := hasDiacritic(candidate)

	if curMarks != candMarks {
		if candMarks {
			return candidate
		}
		return current
	}

	if len([]rune(candidate)) > len([]rune(current)) {
		return candidate
	}
	return current
}

// hasDiacritic reports whether the string carries any combining mark after
// decomposition.
func hasDiacritic(s string) bool {
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			return true
		}
	}
	return false
}

// collapseSpace trims and squeezes internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
