package payment

import (
	"fmt"
	"strings"
)

// NormalizeDocument remove tudo que não for dígito do documento
func NormalizeDocument(document string) string {
	var b strings.Builder
	for _, r := range document {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateDocument valida um CPF (11 dígitos) ou CNPJ (14 dígitos) pelo
// cálculo dos dígitos verificadores. Retorna o documento normalizado.
func ValidateDocument(document string) (string, error) {
	normalized := NormalizeDocument(document)

	switch len(normalized) {
	case 11:
		if !validCPF(normalized) {
			return "", fmt.Errorf("%w: CPF inválido", ErrInvalidDocument)
		}
	case 14:
		if !validCNPJ(normalized) {
			return "", fmt.Errorf("%w: CNPJ inválido", ErrInvalidDocument)
		}
	default:
		return "", fmt.Errorf("%w: documento deve ser CPF (11 dígitos) ou CNPJ (14 dígitos)", ErrInvalidDocument)
	}

	return normalized, nil
}

// DocumentType retorna "CPF" ou "CNPJ" conforme o tamanho do documento normalizado
func DocumentType(document string) string {
	if len(NormalizeDocument(document)) == 11 {
		return "CPF"
	}
	return "CNPJ"
}

func validCPF(cpf string) bool {
	if len(cpf) != 11 || allSameDigit(cpf) {
		return false
	}

	sum1 := 0
	for i := 0; i < 9; i++ {
		sum1 += int(cpf[i]-'0') * (10 - i)
	}
	digit1 := 11 - (sum1 % 11)
	if digit1 >= 10 {
		digit1 = 0
	}

	sum2 := 0
	for i := 0; i < 10; i++ {
		sum2 += int(cpf[i]-'0') * (11 - i)
	}
	digit2 := 11 - (sum2 % 11)
	if digit2 >= 10 {
		digit2 = 0
	}

	return int(cpf[9]-'0') == digit1 && int(cpf[10]-'0') == digit2
}

func validCNPJ(cnpj string) bool {
	if len(cnpj) != 14 || allSameDigit(cnpj) {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	sum1 := 0
	for i := 0; i < 12; i++ {
		sum1 += int(cnpj[i]-'0') * weights1[i]
	}
	digit1 := 11 - (sum1 % 11)
	if digit1 >= 10 {
		digit1 = 0
	}

	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	sum2 := 0
	for i := 0; i < 13; i++ {
		sum2 += int(cnpj[i]-'0') * weights2[i]
	}
	digit2 := 11 - (sum2 % 11)
	if digit2 >= 10 {
		digit2 = 0
	}

	return int(cnpj[12]-'0') == digit1 && int(cnpj[13]-'0') == digit2
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
