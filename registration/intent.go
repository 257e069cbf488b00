package registration

import "strings"

// Intent is the closed set of actions a user can take on menu screens. The
// classifier produces tagged variants so the engine dispatches on an
// enumeration instead of scattering substring checks.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentConfirm
	IntentEdit
	IntentCancel
	IntentBack
	IntentSkip
)

func (i Intent) String() string {
	switch i {
	case IntentConfirm:
		return "confirm"
	case IntentEdit:
		return "edit"
	case IntentCancel:
		return "cancel"
	case IntentBack:
		return "back"
	case IntentSkip:
		return "skip"
	}
	return "unknown"
}

// Keyboard labels are bilingual, so one vocabulary serves every locale.
var intentWords = []struct {
	intent Intent
	words  []string
}{
	{IntentConfirm, []string{"✅", "подтвердить", "tasdiqlash", "confirm"}},
	{IntentEdit, []string{"✏️", "изменить", "tahrirlash", "edit"}},
	{IntentCancel, []string{"❌", "отмена", "bekor", "cancel"}},
	{IntentBack, []string{"⬅", "назад", "orqaga", "back"}},
	{IntentSkip, []string{"➡️", "пропустить", "skip", "o‘tkazib"}},
}

// ClassifyIntent matches a short answer against the menu vocabulary using
// case-insensitive containment. Anything unrecognized maps to IntentUnknown
// and the caller re-prompts the same screen unchanged.
func ClassifyIntent(raw string) Intent {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return IntentUnknown
	}
	for _, entry := range intentWords {
		for _, w := range entry.words {
			if strings.Contains(s, w) {
				return entry.intent
			}
		}
	}
	return IntentUnknown
}
