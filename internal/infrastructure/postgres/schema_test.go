package postgres

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Una columna NUMERIC(p,s) redondea al guardar: el total dejaría de coincidir con
// la suma de las líneas y la reversión no restituiría el stock exacto.
func TestSchema_NumericSinEscalaFija(t *testing.T) {
	typmod := regexp.MustCompile(`(?i)\b(NUMERIC|DECIMAL)\s*\(`)
	assert.False(t, typmod.MatchString(schemaSQL), "montos y cantidades deben ser NUMERIC sin precisión fija")
	assert.Contains(t, schemaSQL, "grand_total    NUMERIC NOT NULL")
}
