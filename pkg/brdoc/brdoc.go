// Package brdoc validates Brazilian identification documents (CPF and CNPJ).
package brdoc

import "strings"

var cnpjWeightsFirst = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
var cnpjWeightsSecond = []int{6, 7, 8, 9, 2, 3, 4, 5, 6, 7, 8, 9}

// CleanDigits strips every non-digit character. Empty input stays empty.
func CleanDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF checks the two verification digits of an 11-digit CPF.
// Formatting characters are ignored.
func ValidCPF(cpf string) bool {
	cpf = CleanDigits(cpf)

	if len(cpf) != 11 {
		return false
	}

	if allSameDigit(cpf) {
		return false
	}

	first := cpfDigit(cpf[:9])
	second := cpfDigit(cpf[:10])

	return int(cpf[9]-'0') == first && int(cpf[10]-'0') == second
}

// ValidCNPJ checks the two verification digits of a 14-digit CNPJ.
// Formatting characters are ignored.
func ValidCNPJ(cnpj string) bool {
	cnpj = CleanDigits(cnpj)

	if len(cnpj) != 14 {
		return false
	}

	if allSameDigit(cnpj) {
		return false
	}

	first := weightedDigit(cnpj[:12], cnpjWeightsFirst)
	second := weightedDigit(cnpj[:13], cnpjWeightsSecond)

	return int(cnpj[12]-'0') == first && int(cnpj[13]-'0') == second
}

// cpfDigit computes a CPF check digit: weights count down from len+1.
func cpfDigit(partial string) int {
	total := 0
	for i := 0; i < len(partial); i++ {
		total += int(partial[i]-'0') * (len(partial) + 1 - i)
	}
	remainder := total % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// weightedDigit pairs digits with weights; extra digits beyond the
// weight vector do not contribute.
func weightedDigit(partial string, weights []int) int {
	total := 0
	for i := 0; i < len(partial) && i < len(weights); i++ {
		total += int(partial[i]-'0') * weights[i]
	}
	remainder := total % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
