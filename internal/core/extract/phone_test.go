package extract

import (
	"reflect"
	"testing"
)

func TestContainsPhone_Modes(t *testing.T) {
	tests := []struct {
		in                      string
		strict, tolerant, loose bool
	}{
		{"05321234567", true, true, true},
		{"ara +905321234567", true, true, true},
		{"905321234567", false, true, true},
		{"0532 123 45 67", false, true, false},
		{"(0532) 123-45-67", false, true, false},
		{"+90 532.123.45.67", false, true, false},
		{"053212345678", false, false, true},
		{"105321234567", false, false, true},
		{"takip no 123405321234567", false, false, true},
		{"iban 05321234567890123", false, false, true},
		{"0532 123 45 67 12 ton", false, true, false},
		{"12 0532 123 45 67", false, true, false},
		{"0532\n1234567", false, false, false},
		{"12 ton 13.60 tenteli", false, false, false},
		{"02125554433", false, false, true},
		{"", false, false, false},
	}
	for _, tc := range tests {
		if got := ContainsPhone(tc.in, PhoneStrict); got != tc.strict {
			t.Fatalf("strict(%q) = %v, want %v", tc.in, got, tc.strict)
		}
		if got := ContainsPhone(tc.in, PhoneTolerant); got != tc.tolerant {
			t.Fatalf("tolerant(%q) = %v, want %v", tc.in, got, tc.tolerant)
		}
		if got := ContainsPhone(tc.in, PhoneLoose); got != tc.loose {
			t.Fatalf("loose(%q) = %v, want %v", tc.in, got, tc.loose)
		}
	}
}

func TestStrictMatches_RetriesAfterGluedCandidate(t *testing.T) {
	got := strictMatches("1905321234567 ve 05441112233", -1)
	want := []string{"05441112233"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("strictMatches = %v, want %v", got, want)
	}
}

func TestFindPhones(t *testing.T) {
	in := "ara 0532 123 45 67 veya +90 (544) 111 2233, tekrar 05321234567"
	want := []string{"+905321234567", "+905441112233"}
	if got := FindPhones(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("FindPhones = %v, want %v", got, want)
	}
	for _, in := range []string{"telefon yok", "siparis 99053212345678", "iban 05321234567890123"} {
		if got := FindPhones(in); got != nil {
			t.Fatalf("FindPhones(%q) = %v, want nil", in, got)
		}
	}
}

func TestParsePhoneMode(t *testing.T) {
	for in, want := range map[string]PhoneMode{"": PhoneTolerant, "STRICT": PhoneStrict, " loose ": PhoneLoose, "tolerant": PhoneTolerant} {
		got, err := ParsePhoneMode(in)
		if err != nil || got != want {
			t.Fatalf("ParsePhoneMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePhoneMode("fuzzy"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
