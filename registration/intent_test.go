package registration

import "testing"

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		in   string
		want Intent
	}{
		{"✅ Подтвердить", IntentConfirm},
		{"tasdiqlash", IntentConfirm},
		{"✏️ Изменить", IntentEdit},
		{"Tahrirlash", IntentEdit},
		{"❌ Отмена", IntentCancel},
		{"bekor qilish", IntentCancel},
		{"⬅ Назад", IntentBack},
		{"orqaga", IntentBack},
		{"➡️ Пропустить", IntentSkip},
		{"O‘tkazib yuborish", IntentSkip},
		{"просто текст", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyIntent(tc.in); got != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIntentString(t *testing.T) {
	if IntentConfirm.String() != "confirm" {
		t.Fatalf("got %q", IntentConfirm.String())
	}
	if Intent(99).String() != "unknown" {
		t.Fatalf("got %q", Intent(99).String())
	}
}
