package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hisaabkit/hisaab/engine/common"
)

func scanOne(line string) TokenSet {
	return Scan([]string{line})
}

func TestScan_DateVariants(t *testing.T) {
	tests := []struct {
		line       string
		value      string
		confidence float64
	}{
		{"01-Jan-2024 RAAST Transfer", "01-Jan-2024", ConfidenceSpecific},
		{"Posted on 15/11/2024", "15/11/2024", ConfidenceLoose},
		{"As of 2024-11-15", "2024-11-15", ConfidenceLoose},
		{"15 Nov 2024 IBFT", "15 Nov 2024", ConfidenceLoose},
	}

	for _, test := range tests {
		dates := scanOne(test.line).Category(common.CategoryDate)
		if assert.NotEmpty(t, dates, "line %q", test.line) {
			assert.Equal(t, test.value, dates[0].Value)
			assert.Equal(t, test.confidence, dates[0].Confidence)
		}
	}
}

func TestScan_AmountConfidence(t *testing.T) {
	amounts := scanOne("63,024.00").Category(common.CategoryAmount)
	if assert.NotEmpty(t, amounts) {
		// comma grouping with 2 decimals is the most specific variant
		assert.Equal(t, ConfidenceSpecific, amounts[0].Confidence)
		assert.Equal(t, "63024", amounts[0].Amount.String())
	}

	amounts = scanOne("Fee 25.50 applied").Category(common.CategoryAmount)
	if assert.NotEmpty(t, amounts) {
		assert.Equal(t, ConfidenceLoose, amounts[0].Confidence)
	}
}

func TestScan_FullIBANAccount(t *testing.T) {
	accounts := scanOne("Account: PK36MEZN0001234567890123").Category(common.CategoryAccountNumber)
	if assert.NotEmpty(t, accounts) {
		assert.Equal(t, "PK36MEZN0001234567890123", accounts[0].Value)
		assert.Equal(t, ConfidenceSpecific, accounts[0].Confidence)
	}
}

func TestScan_PartialIBANAccount(t *testing.T) {
	accounts := scanOne("IBAN PK54BAHL").Category(common.CategoryAccountNumber)
	if assert.NotEmpty(t, accounts) {
		assert.Equal(t, "PK54BAHL", accounts[0].Value)
		assert.Less(t, accounts[0].Confidence, ConfidenceSpecific)
	}
}

func TestScan_PhoneNotAccount(t *testing.T) {
	set := scanOne("Mobile 03001234567")
	phones := set.Category(common.CategoryPhoneNumber)
	if assert.Len(t, phones, 1) {
		assert.Equal(t, "03001234567", phones[0].Value)
	}
	// the 11-digit run must not double as an account number
	for _, acc := range set.Category(common.CategoryAccountNumber) {
		assert.NotEqual(t, "03001234567", acc.Value)
	}
}

func TestScan_TransactionTypeSpecificOverGeneric(t *testing.T) {
	set := scanOne("RAAST payment received")
	types := set.Category(common.CategoryTransactionType)

	var specific, generic bool
	for _, tok := range types {
		if tok.Value == "RAAST" {
			specific = tok.Confidence == ConfidenceSpecific
		}
		if tok.Value == "Payment" {
			generic = tok.Confidence == ConfidenceGeneric
		}
	}
	assert.True(t, specific, "expected specific RAAST token")
	assert.True(t, generic, "expected generic Payment token")
}

func TestScan_BankNameCanonical(t *testing.T) {
	set := scanOne("Transfer via Meezan Bank Ltd")
	banks := set.Category(common.CategoryBankName)
	if assert.NotEmpty(t, banks) {
		best, ok := set.Best(common.CategoryBankName)
		assert.True(t, ok)
		assert.Equal(t, "Meezan Bank", best.Value)
		assert.Equal(t, ConfidenceSpecific, best.Confidence)
	}
}

func TestScan_BankAbbreviationNeedsWordBoundary(t *testing.T) {
	// "mcb" buried inside a reference code is not a bank mention
	banks := scanOne("Ref MCB123X45678").Category(common.CategoryBankName)
	assert.Empty(t, banks)

	banks = scanOne("via MCB to UBL").Category(common.CategoryBankName)
	assert.Len(t, banks, 2)
}

func TestScan_Reference(t *testing.T) {
	refs := scanOne("TID: 9845123076").Category(common.CategoryReference)
	if assert.NotEmpty(t, refs) {
		assert.Equal(t, "9845123076", refs[0].Value)
		assert.Equal(t, ConfidenceStrong, refs[0].Confidence)
	}
}

func TestScan_Branch(t *testing.T) {
	branches := scanOne("Gulberg Branch Lahore").Category(common.CategoryBranch)
	if assert.NotEmpty(t, branches) {
		assert.Equal(t, "Gulberg Branch", branches[0].Value)
	}
}

func TestScan_NoMatchesIsEmptyNotError(t *testing.T) {
	set := Scan([]string{"nothing interesting here"})
	assert.Empty(t, set.Category(common.CategoryDate))
	assert.Empty(t, set.Category(common.CategoryAccountNumber))
	assert.Empty(t, set.Category(common.CategoryPhoneNumber))
}

func TestTokenSet_InRange(t *testing.T) {
	set := Scan([]string{
		"01-Jan-2024",
		"middle",
		"02-Feb-2024",
	})

	inRange := set.InRange(common.CategoryDate, 0, 1)
	if assert.Len(t, inRange, 1) {
		assert.Equal(t, "01-Jan-2024", inRange[0].Value)
	}
}

func TestTokenSet_BestPrefersConfidence(t *testing.T) {
	set := Scan([]string{
		"15/11/2024",
		"01-Jan-2024",
	})

	best, ok := set.Best(common.CategoryDate)
	assert.True(t, ok)
	assert.Equal(t, "01-Jan-2024", best.Value)
}
