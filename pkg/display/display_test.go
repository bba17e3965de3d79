package display

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"order_placed", "Order Placed"},
		{"payment-success", "Payment Success"},
		{"kyc_completed", "KYC Completed"},
		{"upi payment", "UPI Payment"},
		{"emi_paid", "EMI Paid"},
		{"claim.paid", "Claim Paid"},
		{"ORDER PLACED", "ORDER Placed"}, // 6+ char all-caps token is not an acronym
		{"SIM swap", "SIM Swap"},
		{"login", "Login"},
		{"Login", "Login"},
		{"id_verified", "ID Verified"},
		{"", ""},
		{"  spaced   out  ", "Spaced Out"},
		{"A1C2", "A1C2"}, // short all-caps mixed token kept as-is
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormat_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Format("kyc_and-upi.check"); got != "KYC And UPI Check" {
			t.Fatalf("Format = %q", got)
		}
	}
}
