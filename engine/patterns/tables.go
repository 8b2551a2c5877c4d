package patterns

import (
	"github.com/spf13/viper"
)

// Tables holds the data-driven vocabulary the scanner matches against. New
// banks and keywords are added through configuration, not code.
type Tables struct {
	// BankFull maps a lowercase full bank name to its canonical form.
	BankFull map[string]string
	// BankAbbrev maps a lowercase abbreviation to its canonical form.
	BankAbbrev map[string]string
	// TypeSpecific are transfer-scheme and channel keywords (lowercase).
	TypeSpecific []string
	// TypeGeneric are weak debit/credit vocabulary keywords (lowercase).
	TypeGeneric []string
}

var defaultBankFull = map[string]string{
	"meezan bank":        "Meezan Bank",
	"bank alfalah":       "Bank Alfalah",
	"habib bank":         "Habib Bank",
	"united bank":        "United Bank",
	"mcb bank":           "MCB Bank",
	"allied bank":        "Allied Bank",
	"national bank":      "National Bank",
	"faysal bank":        "Faysal Bank",
	"js bank":            "JS Bank",
	"askari bank":        "Askari Bank",
	"bank al habib":      "Bank Al Habib",
	"soneri bank":        "Soneri Bank",
	"standard chartered": "Standard Chartered",
}

var defaultBankAbbrev = map[string]string{
	"hbl":  "HBL",
	"ubl":  "UBL",
	"mcb":  "MCB",
	"nbp":  "NBP",
	"abl":  "ABL",
	"bafl": "BAFL",
	"bahl": "BAHL",
	"scb":  "SCB",
}

var defaultTypeSpecific = []string{
	"raast",
	"ibft",
	"atm withdrawal",
	"pos purchase",
	"online transfer",
	"fund transfer",
	"internal transfer",
	"cheque",
	"clearing",
	"remittance",
	"salary",
	"bill payment",
}

var defaultTypeGeneric = []string{
	"deposit",
	"withdrawal",
	"debit",
	"credit",
	"payment",
	"charges",
	"cash",
}

// LoadTables builds the vocabulary tables from viper configuration, falling
// back to the built-in defaults for any table the config leaves out. Callers
// embedding the engine as a library get sensible behavior with no config.
func LoadTables() Tables {
	t := Tables{
		BankFull:     viper.GetStringMapString("engine.banks.full"),
		BankAbbrev:   viper.GetStringMapString("engine.banks.abbrev"),
		TypeSpecific: viper.GetStringSlice("engine.transaction_types.specific"),
		TypeGeneric:  viper.GetStringSlice("engine.transaction_types.generic"),
	}
	if len(t.BankFull) == 0 {
		t.BankFull = defaultBankFull
	}
	if len(t.BankAbbrev) == 0 {
		t.BankAbbrev = defaultBankAbbrev
	}
	if len(t.TypeSpecific) == 0 {
		t.TypeSpecific = defaultTypeSpecific
	}
	if len(t.TypeGeneric) == 0 {
		t.TypeGeneric = defaultTypeGeneric
	}
	return t
}
