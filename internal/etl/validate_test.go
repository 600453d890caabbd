package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail(""), "optional field")
	assert.True(t, ValidEmail("maria.silva@empresa.com.br"))
	assert.True(t, ValidEmail("j_p+rh@dominio.org"))

	assert.False(t, ValidEmail("sem-arroba.com"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a@b."))
	assert.False(t, ValidEmail("espaco @dominio.com"))
}

func TestValidDateOrder(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, ValidDateOrder(start, time.Time{}, false), "absent end")
	assert.True(t, ValidDateOrder(start, start, true), "same day")
	assert.True(t, ValidDateOrder(start, start.AddDate(0, 0, 5), true))
	assert.False(t, ValidDateOrder(start, start.AddDate(0, 0, -1), true))
}

func TestRowAccessors(t *testing.T) {
	row := Row{
		"UNIDADE":     " Matriz ",
		"EMPRESA":     "42",
		"DIAS":        "3,5",
		"REFAZER":     "1",
		"DT_INICIO":   "01/02/2024",
		"HORA_INICIO": "08:15",
		"VAZIO":       "",
	}

	v, ok := row.Get("UNIDADE")
	assert.True(t, ok)
	assert.Equal(t, "Matriz", v, "values are trimmed")

	_, ok = row.Get("VAZIO")
	assert.False(t, ok, "empty means absent")

	_, ok = row.Get("NAO_EXISTE")
	assert.False(t, ok, "missing key means absent")

	n, ok := row.GetInt("EMPRESA")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	f, ok := row.GetFloat("DIAS")
	assert.True(t, ok)
	assert.Equal(t, 3.5, f, "decimal comma accepted")

	assert.True(t, row.GetBool("REFAZER"))
	assert.False(t, row.GetBool("VAZIO"))

	d, ok := row.GetDate("DT_INICIO")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), d)

	tm, ok := row.GetTime("HORA_INICIO")
	assert.True(t, ok)
	assert.Equal(t, 8, tm.Hour())
}
