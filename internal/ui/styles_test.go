package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormattersCarryPrefixAndMessage(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string) string
		prefix string
	}{
		{"Success", Success, "✓"},
		{"Warn", Warn, "⚠"},
		{"Err", Err, "✗"},
		{"Info", Info, "ℹ"},
		{"Hint", Hint, "→"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.fn("minted")
			assert.Contains(t, out, tt.prefix)
			assert.Contains(t, out, "minted")
		})
	}
}

func TestInfoDifferentFromHint(t *testing.T) {
	assert.NotEqual(t, Info("message"), Hint("message"))
}

func TestPlainFormattersKeepInput(t *testing.T) {
	for name, fn := range map[string]func(string) string{"Addr": Addr, "Val": Val, "Meta": Meta} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, fn("0xABCDEF"), "0xABCDEF")
		})
	}
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "", TruncateAddr(""))
	assert.Equal(t, "0x12345678", TruncateAddr("0x12345678"))
	assert.Equal(t, "0x1234…5678", TruncateAddr("0x1234567890abcdef1234567890abcdef12345678"))
}

func TestCondense(t *testing.T) {
	assert.Equal(t, "0xAbC...34567", Condense("0xAbCdEf0123456789aBcDeF0123456789aB34567"))
	assert.Equal(t, "0x1234", Condense("0x1234"))
}

func TestBanner(t *testing.T) {
	b := Banner()
	assert.NotEmpty(t, b)
	assert.Contains(t, b, "terminal minting")
}
