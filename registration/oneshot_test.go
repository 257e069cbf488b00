package registration

import (
	"errors"
	"testing"
)

func TestParseInline(t *testing.T) {
	d, err := ParseInline("Akbar Karimov, Jeep Wrangler, +998 90 123-45-67, 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Akbar Karimov" || d.Car != "Jeep Wrangler" {
		t.Fatalf("got %+v", d)
	}
	if d.Phone != "+998901234567" {
		t.Fatalf("phone not normalized: %q", d.Phone)
	}
	if d.People != 3 {
		t.Fatalf("people: %d", d.People)
	}
}

func TestParseInlineWrongShape(t *testing.T) {
	for _, in := range []string{"привет", "a, b", "a, b, c, d, e"} {
		if _, err := ParseInline(in); !errors.Is(err, ErrNotInline) {
			t.Fatalf("%q: got %v, want ErrNotInline", in, err)
		}
	}
}

func TestParseInlineRejectsWholeInput(t *testing.T) {
	// One bad sub-field poisons the whole message; no partial draft survives.
	d, err := ParseInline("Akbar, Jeep, not-a-phone, 3")
	if err == nil {
		t.Fatal("expected combined validation error")
	}
	if errors.Is(err, ErrNotInline) {
		t.Fatal("validation failure must be distinct from ErrNotInline")
	}
	if d != (Draft{}) {
		t.Fatalf("expected empty draft, got %+v", d)
	}
}
