package artifact

import (
	"fmt"

	"github.com/roach88/slider/internal/inventory"
)

// Pair is a source string and its translation.
type Pair struct {
	Original   string `json:"original" yaml:"original"`
	Translated string `json:"translated,omitempty" yaml:"translated,omitempty"`
}

// String returns the translation, or the original when there is none.
func (p Pair) String() string {
	if p.Translated != "" {
		return p.Translated
	}
	return p.Original
}

// Translator supplies localized names and screen strings.
type Translator interface {
	Collectible(name string, area inventory.Area) Pair
	SpecialItem(name string) Pair
	Single(key string) string
}

// Screen string keys.
const (
	KeyCollection            = "Collection"
	KeyLegendaryCheeseburger = "LegendaryCheeseburger"
)

var englishSingles = map[string]string{
	KeyCollection:            "Collection",
	KeyLegendaryCheeseburger: `Legendary "Burger"`,
}

// Table is a map-backed Translator. Missing entries fall back to the
// untranslated text. The zero value is an English translator.
type Table struct {
	// Collectibles is keyed by "Name" or by "Name@Area" for an
	// area-specific translation.
	Collectibles map[string]string `yaml:"collectibles"`
	SpecialItems map[string]string `yaml:"special_items"`
	Singles      map[string]string `yaml:"singles"`
}

var _ Translator = Table{}

func (t Table) Collectible(name string, area inventory.Area) Pair {
	p := Pair{Original: name}
	if tr, ok := t.Collectibles[fmt.Sprintf("%s@%s", name, area)]; ok {
		p.Translated = tr
	} else if tr, ok := t.Collectibles[name]; ok {
		p.Translated = tr
	}
	return p
}

func (t Table) SpecialItem(name string) Pair {
	return Pair{Original: name, Translated: t.SpecialItems[name]}
}

func (t Table) Single(key string) string {
	if s, ok := t.Singles[key]; ok {
		return s
	}
	if s, ok := englishSingles[key]; ok {
		return s
	}
	return key
}
