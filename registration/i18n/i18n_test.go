package i18n

import (
	"strings"
	"testing"

	"jeepfest-bot/registration"
	"jeepfest-bot/registration/flow"
)

func testCatalog() *Catalog {
	return New(Event{
		Title:      "Jeep Festival",
		Dates:      "18-20 сентября",
		FeeAmount:  "500 000 сум",
		CardNumber: "8600 0000 0000 0000",
	})
}

func TestPromptFallsBackToDefaultLocale(t *testing.T) {
	c := testCatalog()
	ru := c.Prompt("ru", flow.Prompt{ID: flow.PromptAskName})
	missing := c.Prompt("kk", flow.Prompt{ID: flow.PromptAskName})
	if missing != ru {
		t.Fatalf("expected fallback to ru, got %q", missing)
	}
}

func TestPromptPaymentInfoSubstitutesEvent(t *testing.T) {
	c := testCatalog()
	got := c.Prompt("ru", flow.Prompt{ID: flow.PromptPaymentInfo})
	if !strings.Contains(got, "500 000 сум") || !strings.Contains(got, "8600 0000 0000 0000") {
		t.Fatalf("fee or card missing: %q", got)
	}
}

func TestPromptConflictLocalizesFieldName(t *testing.T) {
	c := testCatalog()
	got := c.Prompt("ru", flow.Prompt{
		ID:   flow.PromptConflict,
		Args: []any{string(registration.FieldPhone)},
	})
	if !strings.Contains(got, "Телефон") {
		t.Fatalf("field label not localized: %q", got)
	}
	if strings.Contains(got, "phone") {
		t.Fatalf("raw field name leaked: %q", got)
	}
}

func TestSummaryEscapesUserValues(t *testing.T) {
	c := testCatalog()
	d := registration.Draft{
		Name:   "Evil <b>Name</b>",
		Car:    "UAZ & Co",
		Phone:  "+998901112233",
		People: 2,
	}
	got := c.Summary("ru", &d, registration.DefaultFields)
	if strings.Contains(got, "<b>Name</b>") {
		t.Fatalf("user html not escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;b&gt;Name&lt;/b&gt;") || !strings.Contains(got, "UAZ &amp; Co") {
		t.Fatalf("escaping wrong: %q", got)
	}
	if !strings.Contains(got, "Человек: 2") {
		t.Fatalf("people line missing: %q", got)
	}
}

func TestSummarySkipsUnsetOptionalFields(t *testing.T) {
	c := testCatalog()
	d := registration.Draft{Name: "A B", Car: "Jeep", Phone: "+998901112233", People: 1}
	got := c.Summary("ru", &d, registration.AllFields)
	for _, label := range []string{"Госномер", "Участие", "Дисциплина"} {
		if strings.Contains(got, label) {
			t.Fatalf("unset field %q rendered: %q", label, got)
		}
	}
}
