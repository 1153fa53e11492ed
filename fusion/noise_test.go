package fusion

import "testing"

func TestOrgNoise(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Acme Holdings Inc", false},
		{"4179097 Canada Inc", false},
		{"Empresa Acme SARL", false},
		{"of the year", true},
		{"AB", true},
		{"TOTAL", true},
		{"123456", true},
		{"2024 results", true},
		{"portion 2", true},
		{"die AG", true},
		{"Société détient des actifs", true},
	}
	for _, tc := range cases {
		if got := OrgNoise(tc.text); got != tc.want {
			t.Errorf("OrgNoise(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestLocNoise(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Paris", false},
		{"New York", false},
		{"warehouse", true},
		{"Stadion", true},
		{"12 main", true},
		{"OK", true},
		{"common ground", true},
	}
	for _, tc := range cases {
		if got := LocNoise(tc.text); got != tc.want {
			t.Errorf("LocNoise(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestPersonNoise(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Emily Carter", false},
		{"Jean-Pierre Dubois", false},
		{"Balance", true},
		{"J.P.", true},
		{"Mr", true},
		{"Smith", true}, // short single token ending in a consonant
		{"DUPONT", true},
		{"notariell beurkundeten Beschluss", true},
		{"12 Fred", true},
	}
	for _, tc := range cases {
		if got := PersonNoise(tc.text); got != tc.want {
			t.Errorf("PersonNoise(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestAddressNumberOnly(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"123 Main Street", false},
		{"4 rue de la Paix, 75002 Paris", false},
		{"12345", true},
		{"Main Street", true},
		{"", true},
		{"Loan repayment 123", true},
		{"Hypothèque 450 000", true},
	}
	for _, tc := range cases {
		if got := AddressNumberOnly(tc.text); got != tc.want {
			t.Errorf("AddressNumberOnly(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestStripPhoneLabels(t *testing.T) {
	got := StripPhoneLabels("123 Main St\nTel: 555-1234")
	if got != "123 Main St" {
		t.Errorf("StripPhoneLabels = %q, want %q", got, "123 Main St")
	}
	if got := StripPhoneLabels("123 Main St"); got != "123 Main St" {
		t.Errorf("address without label changed: %q", got)
	}
	// Stripping everything returns the input untouched.
	if got := StripPhoneLabels("Fax: 555-9999"); got != "Fax: 555-9999" {
		t.Errorf("label-only text should be returned unchanged, got %q", got)
	}
}

func TestHasLegalSuffix(t *testing.T) {
	if !HasLegalSuffix("Acme Ltd") {
		t.Error("expected suffix in 'Acme Ltd'")
	}
	if !HasLegalSuffix("Müller GmbH & Co. KG") {
		t.Error("expected suffix in 'Müller GmbH & Co. KG'")
	}
	if HasLegalSuffix("Acme Group") {
		t.Error("unexpected suffix in 'Acme Group'")
	}
}
