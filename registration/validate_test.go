package registration

import (
	"regexp"
	"testing"
)

func TestValidateName(t *testing.T) {
	if _, err := ValidateName(" x "); err == nil {
		t.Fatal("expected rejection for one-letter name")
	}
	name, err := ValidateName("  Akbar Karimov ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Akbar Karimov" {
		t.Fatalf("got %q", name)
	}
}

func TestValidateCarStripsQuotes(t *testing.T) {
	car, err := ValidateCar(` «Jeep Wrangler» `)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if car != "Jeep Wrangler" {
		t.Fatalf("got %q", car)
	}
	if _, err := ValidateCar(`""`); err == nil {
		t.Fatal("expected rejection for quotes-only input")
	}
}

func TestValidatePlate(t *testing.T) {
	plate, err := ValidatePlate(" 01 a123bc ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plate != "01 A123BC" {
		t.Fatalf("got %q", plate)
	}
	if _, err := ValidatePlate("A1"); err == nil {
		t.Fatal("expected rejection for short plate")
	}
}

func TestValidatePhoneNormalizes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+998 90 123-45-67", "+998901234567"},
		{"(90) 123 45 67", "901234567"},
	}
	for _, tc := range cases {
		got, err := ValidatePhone(tc.in, nil)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "12345", "call me maybe"} {
		if _, err := ValidatePhone(in, nil); err == nil {
			t.Fatalf("%q: expected rejection", in)
		}
	}
}

func TestValidatePhoneStrict(t *testing.T) {
	strict := regexp.MustCompile(`^\+998\d{9}$`)

	if _, err := ValidatePhone("+998 90 123-45-67", strict); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ValidatePhone("90 123-45-67", strict); err == nil {
		t.Fatal("expected rejection without country code")
	}
}

func TestValidatePeople(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		reject bool
	}{
		{"1", 1, false},
		{"50", 50, false},
		{"нас будет 3", 3, false},
		{"0", 0, true},
		{"51", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ValidatePeople(tc.in)
		if tc.reject {
			if err == nil {
				t.Fatalf("%q: expected rejection", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseYesNo(t *testing.T) {
	cases := []struct {
		in        string
		value, ok bool
	}{
		{"Да", true, true},
		{"ha", true, true},
		{"Нет", false, true},
		{"yo‘q", false, true},
		{"может быть", false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		value, ok := ParseYesNo(tc.in)
		if value != tc.value || ok != tc.ok {
			t.Fatalf("%q: got (%v, %v), want (%v, %v)", tc.in, value, ok, tc.value, tc.ok)
		}
	}
}

func TestParseDiscipline(t *testing.T) {
	if d, ok := ParseDiscipline("Триал"); !ok || d != DisciplineTrial {
		t.Fatalf("got (%q, %v)", d, ok)
	}
	if d, ok := ParseDiscipline("sprint"); !ok || d != DisciplineSprint {
		t.Fatalf("got (%q, %v)", d, ok)
	}
	if _, ok := ParseDiscipline("дрифт"); ok {
		t.Fatal("expected unknown discipline")
	}
}
