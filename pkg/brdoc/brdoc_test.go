package brdoc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCPF(t *testing.T) {
	assert.True(t, ValidCPF("11144477735"))
	assert.True(t, ValidCPF("111.444.777-35"), "formatting must be ignored")

	assert.False(t, ValidCPF(""))
	assert.False(t, ValidCPF("1114447773"), "too short")
	assert.False(t, ValidCPF("111444777350"), "too long")
	assert.False(t, ValidCPF("00000000000"), "repeated digits")
	assert.False(t, ValidCPF("99999999999"), "repeated digits")
	assert.False(t, ValidCPF("abcdefghijk"))
}

func TestValidCPF_SingleDigitMutations(t *testing.T) {
	valid := "11144477735"
	for pos := 0; pos < len(valid); pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if valid[pos] == d {
				continue
			}
			mutated := valid[:pos] + string(d) + valid[pos+1:]
			assert.False(t, ValidCPF(mutated), "mutation %s must fail", mutated)
		}
	}
}

func TestValidCNPJ(t *testing.T) {
	assert.True(t, ValidCNPJ("11222333000183"))
	assert.True(t, ValidCNPJ("11.222.333/0001-83"), "formatting must be ignored")

	assert.False(t, ValidCNPJ(""))
	assert.False(t, ValidCNPJ("1122233300018"), "too short")
	assert.False(t, ValidCNPJ("00000000000000"), "repeated digits")
	assert.False(t, ValidCNPJ("11222333000184"), "wrong second digit")
	assert.False(t, ValidCNPJ("11222333000193"), "wrong first digit")
}

func TestCleanDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"111.444.777-35", "11144477735"},
		{"(11) 98765-4321", "11987654321"},
		{"abc", ""},
		{"12345", "12345"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDigits(tt.in))
		})
	}
}
