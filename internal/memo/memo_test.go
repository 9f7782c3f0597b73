package memo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
)

func TestEncode_ShortNameAndAmount(t *testing.T) {
	m := Encode("Ana Silva", decimal.RequireFromString("5.500"))
	assert.Equal(t, "Ana Silva:5.5", m)
}

func TestEncode_StripsUnsafeCharacters(t *testing.T) {
	m := Encode("Jo@o #1!", decimal.NewFromInt(10))
	assert.Equal(t, "Joo 1:10", m)
}

func TestEncode_TrimsTrailingZeros(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"5.500", "Ana:5.5"},
		{"10.000", "Ana:10"},
		{"8.750", "Ana:8.75"},
		{"0.1", "Ana:0.1"},
	}

	for _, tt := range tests {
		m := Encode("Ana", decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.expected, m)
	}
}

func TestEncode_TruncatesLongName(t *testing.T) {
	m := Encode("A Very Very Long Donor Name Indeed", decimal.NewFromInt(1000))

	assert.Equal(t, "A Very Very Long Donor :1000", m)
	assert.Equal(t, MaxBytes, len(m))
}

func TestEncode_FallsBackToInitials(t *testing.T) {
	// An amount string long enough to leave a name budget of 3 or less.
	amount := decimal.RequireFromString("123456789012345678901234")

	m := Encode("Ana Beatriz Carvalho Dias", amount)

	assert.Equal(t, "ABC:123456789012345678901234", m)
	assert.LessOrEqual(t, len(m), MaxBytes)
}

func TestEncode_EmptyNameDegradesToAmountOnly(t *testing.T) {
	m := Encode("!!!", decimal.RequireFromString("123456789012345678901234"))
	assert.Equal(t, ":123456789012345678901234", m)
}

func TestEncode_WithinBudgetForAllValidInputs(t *testing.T) {
	names := []string{
		"Jo",
		"Ana Silva",
		"ExactlyTwentyCharsAB",
		"José Çedilha Ácentos",
		"A B C D E F G H I J",
		"!@#$ Weird ::: Name",
	}
	amounts := []string{"0.1", "5.5", "8.75", "999.999", "1000"}

	for _, name := range names {
		for _, amount := range amounts {
			m := Encode(name, decimal.RequireFromString(amount))
			assert.LessOrEqual(t, len(m), MaxBytes, "memo %q for (%q, %s)", m, name, amount)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		rawMemo  string
		expected string
	}{
		{"name and amount", "Ana Silva:5.5", "Ana Silva"},
		{"name with colon in amount part", "Ana:5:5", "Ana"},
		{"empty memo", "", domain.AnonymousDonor},
		{"no delimiter", "just text", domain.AnonymousDonor},
		{"empty name segment", ":5.5", domain.AnonymousDonor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.rawMemo))
		})
	}
}
