package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	text := "So... how's <var>Cat</var> doing?"

	assert.Equal(t, "So... how's Mittens doing?", Render(text, map[string]string{"Cat": "Mittens"}))
	assert.Equal(t, "So... how's Cat doing?", Render(text, nil))
	assert.Equal(t, "Are we there yet?", Render("Are we there yet?", map[string]string{"Cat": "x"}))
	assert.Equal(t, "A and B", Render("<var>X</var> and <var>Y</var>", map[string]string{"X": "A", "Y": "B"}))
}

func TestVars(t *testing.T) {
	assert.Equal(t, []string{"X", "Y"}, Vars("<var>X</var> and <var>Y</var>"))
	assert.Nil(t, Vars("plain"))
}
