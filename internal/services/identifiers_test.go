package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	passNumberPattern    = regexp.MustCompile(`^BP-[0-9A-F]{8}$`)
	transactionIDPattern = regexp.MustCompile(`^TXN-[0-9A-F]{16}$`)
)

func TestGeneratePassNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := generatePassNumber()
		assert.Regexp(t, passNumberPattern, number)
		seen[number] = true
	}
	// 100 номеров из 4 случайных байт практически не должны совпадать
	assert.Greater(t, len(seen), 95)
}

func TestGenerateTransactionID(t *testing.T) {
	first := generateTransactionID()
	second := generateTransactionID()

	assert.Regexp(t, transactionIDPattern, first)
	assert.Regexp(t, transactionIDPattern, second)
	assert.NotEqual(t, first, second)
}
