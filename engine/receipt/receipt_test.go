package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hisaabkit/hisaab/engine/segment"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"JazzCash Payment Receipt", ServiceJazzCash},
		{"easypaisa money transfer", ServiceEasyPaisa},
		{"Meezan Bank funds transfer advice", ServiceMeezan},
		{"Bank Alfalah payment confirmation", ServiceAlfalah},
		{"RAAST transfer received", ServiceMeezan},
		{"Alfa Wallet top-up", ServiceAlfalah},
		{"grocery store invoice", ServiceUnknown},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Detect(test.text), "text %q", test.text)
	}
}

func TestDetect_BrandKeywordBeatsScheme(t *testing.T) {
	// RAAST alone points at Meezan, but an explicit brand mention wins
	assert.Equal(t, ServiceJazzCash, Detect("Sent via JazzCash using RAAST"))
}

func TestExtract_JazzCashReceipt(t *testing.T) {
	lines := []string{
		"JazzCash Payment Receipt",
		"TID: 9845123076",
		"01-Jan-2024 04:15 PM",
		"Sender Name: Ali Khan",
		"0300***1234",
		"Receiver Name: Sara Butt",
		"03009876543",
		"Amount Rs. 5,000.00",
		"Fee Rs. 25.00",
		"Total Rs. 5,025.00",
		"Successful",
	}

	r := Extract(lines)

	assert.Equal(t, ServiceJazzCash, r.Service)
	assert.Equal(t, "9845123076", r.TransactionID)
	assert.Equal(t, "01-Jan-2024", r.Date)
	assert.Equal(t, "04:15 PM", r.Time)
	assert.Equal(t, "Ali Khan", r.FromName)
	assert.Equal(t, "Sara Butt", r.ToName)
	assert.Equal(t, "0300***1234", r.FromPhone)
	assert.Equal(t, "03009876543", r.ToPhone)
	assert.Equal(t, "5000", r.Amount.String())
	assert.Equal(t, "25", r.Fee.String())
	assert.Equal(t, "5025", r.TotalAmount.String())
	assert.Equal(t, "Successful", r.Status)
	assert.Equal(t, "PKR", r.Currency)
}

func TestExtract_EasyPaisaBareNames(t *testing.T) {
	lines := []string{
		"easypaisa",
		"Sent by",
		"ALI KHAN",
		"Sent to",
		"SARA BUTT",
		"Rs. 1,200",
	}

	r := Extract(lines)

	assert.Equal(t, ServiceEasyPaisa, r.Service)
	assert.Equal(t, "ALI KHAN", r.FromName)
	assert.Equal(t, "SARA BUTT", r.ToName)
	assert.Equal(t, "1200", r.Amount.String())
	assert.Equal(t, "1200", r.TotalAmount.String())
}

func TestExtract_GenericBothMarkers(t *testing.T) {
	lines := []string{
		"Payment Receipt",
		"From",
		"ALI KHAN",
		"To",
		"SARA BUTT",
		"PKR 5,000",
		"TID: 987654321",
		"Successful",
	}

	r := Extract(lines)

	assert.Equal(t, ServiceUnknown, r.Service)
	assert.Equal(t, "ALI KHAN", r.FromName)
	assert.Equal(t, "SARA BUTT", r.ToName)
	assert.Equal(t, "5000", r.Amount.String())
	assert.Equal(t, "987654321", r.TransactionID)
	assert.Equal(t, "Successful", r.Status)
}

func TestExtract_GenericSingleMarker(t *testing.T) {
	lines := []string{
		"Sent by",
		"ALI KHAN",
		"SARA BUTT",
		"Rs. 2,500",
	}

	r := Extract(lines)

	assert.Equal(t, "ALI KHAN", r.FromName)
	assert.Equal(t, "SARA BUTT", r.ToName)
	assert.Equal(t, "2500", r.Amount.String())
}

func TestExtract_FeeAddsIntoTotal(t *testing.T) {
	lines := []string{
		"From",
		"ALI KHAN",
		"To",
		"SARA BUTT",
		"PKR 5,000",
		"Fee Rs. 50",
	}

	r := Extract(lines)

	assert.Equal(t, "5000", r.Amount.String())
	assert.Equal(t, "50", r.Fee.String())
	assert.Equal(t, "5050", r.TotalAmount.String())
}

func TestExtract_UnrecognizedStillReturnsRecord(t *testing.T) {
	r := Extract([]string{"garbled text", "Rs. 500"})

	assert.Equal(t, ServiceUnknown, r.Service)
	assert.Equal(t, "500", r.Amount.String())
	assert.Empty(t, r.FromName)
	assert.Empty(t, r.ToName)
}

func TestExtract_TotalLineDoesNotActAsToLabel(t *testing.T) {
	// "Total" starts with "to"; the receiver name must still come from the
	// real section label further down
	lines := []string{
		"JazzCash Payment Receipt",
		"Total Rs. 505",
		"Sent to",
		"SARA BUTT",
	}

	r := Extract(lines)

	assert.Equal(t, "SARA BUTT", r.ToName)
	assert.Empty(t, r.FromName)
	assert.Equal(t, "505", r.TotalAmount.String())
}

func TestLabelValue_WordBoundaries(t *testing.T) {
	lines := []string{"Total Rs. 505", "To", "SARA BUTT"}
	assert.Equal(t, "SARA BUTT", labelValue(lines, "to"))

	assert.Equal(t, "", labelValue([]string{"Customer copy"}, "to"))
	assert.Equal(t, "Ali Khan", labelValue([]string{"To: Ali Khan"}, "to"))
}

func TestAssignNameRoles_NoMarkersDocOrder(t *testing.T) {
	sec := segment.Sections{From: -1, To: -1, Amount: -1, Date: -1, TID: -1}
	candidates := []located{
		{value: "ALI KHAN", line: 2},
		{value: "SARA BUTT", line: 5},
	}

	from, to := AssignNameRoles(sec, candidates)
	assert.Equal(t, "ALI KHAN", from)
	assert.Equal(t, "SARA BUTT", to)
}

func TestAssignNameRoles_ToMarkerOnly(t *testing.T) {
	sec := segment.Sections{From: -1, To: 3, Amount: -1, Date: -1, TID: -1}
	candidates := []located{
		{value: "ALI KHAN", line: 1},
		{value: "SARA BUTT", line: 4},
	}

	from, to := AssignNameRoles(sec, candidates)
	assert.Equal(t, "SARA BUTT", to)
	assert.Equal(t, "ALI KHAN", from)
}
