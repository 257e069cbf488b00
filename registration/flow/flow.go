// Package flow implements the registration conversation state machine. The
// engine is transport-agnostic: it consumes abstract inputs, mutates one
// user's session and emits prompt descriptors that the Telegram layer renders
// through the locale catalog.
package flow

import (
	"jeepfest-bot/registration"
)

// State is one step of the conversation. Collecting states are derived from
// the configured field sequence so optional branches never appear in
// deployments that do not enable them.
type State string

const (
	// StateIdle means no conversation is active for the user.
	StateIdle State = "idle"
	// StateLang asks the user to pick a locale before the first field.
	StateLang State = "lang"
	// StateConfirm shows the accumulated draft and waits for an intent.
	StateConfirm State = "confirm"
)

const collectPrefix = "collect:"

// Collecting returns the state that gathers the given field.
func Collecting(f registration.Field) State {
	return State(collectPrefix + string(f))
}

// CollectedField reports which field a collecting state gathers.
func CollectedField(s State) (registration.Field, bool) {
	if len(s) > len(collectPrefix) && s[:len(collectPrefix)] == collectPrefix {
		return registration.Field(s[len(collectPrefix):]), true
	}
	return "", false
}

// Session is one user's in-progress conversation: volatile by design, lost on
// restart before completion. At most one exists per identity.
type Session struct {
	TgID    int64
	State   State
	Locale  string
	Draft   registration.Draft
	Editing bool // edit loop: prior answers pre-fill and may be kept
}

// Input is one inbound event consumed by a turn.
type Input struct {
	Text     string
	MediaRef string // Telegram file id for photo messages
}

// Keyboard hints tell the transport layer which reply keyboard to attach.
type Keyboard int

const (
	KbNone Keyboard = iota
	KbMain
	KbLang
	KbCancel
	KbSkip
	KbConfirm
	KbYesNo
	KbDiscipline
	KbPeople
	KbRemove
)

// PromptID selects a localized template from the catalog.
type PromptID string

const (
	PromptChooseLang PromptID = "choose_lang"

	PromptAskName          PromptID = "ask_name"
	PromptAskCar           PromptID = "ask_car"
	PromptAskPlate         PromptID = "ask_plate"
	PromptAskParticipation PromptID = "ask_participation"
	PromptAskDiscipline    PromptID = "ask_discipline"
	PromptAskPhone         PromptID = "ask_phone"
	PromptAskPeople        PromptID = "ask_people"
	PromptAskPhoto         PromptID = "ask_photo"

	PromptBadName   PromptID = "bad_name"
	PromptBadCar    PromptID = "bad_car"
	PromptBadPlate  PromptID = "bad_plate"
	PromptBadChoice PromptID = "bad_choice"
	PromptBadPhone  PromptID = "bad_phone"
	PromptBadPeople PromptID = "bad_people"
	PromptBadPhoto  PromptID = "bad_photo"

	PromptKeepCurrent PromptID = "keep_current"
	PromptSummary     PromptID = "summary"
	PromptConflict    PromptID = "conflict"
	PromptDone        PromptID = "done"
	PromptUpdated     PromptID = "updated"
	PromptPaymentInfo PromptID = "payment_info"
	PromptCancelled   PromptID = "cancelled"
)

// Prompt is one outbound message descriptor.
type Prompt struct {
	ID       PromptID
	Args     []any
	Keyboard Keyboard
}

// Completion reports a successfully persisted registration.
type Completion struct {
	RegID   int64
	Reg     registration.Registration
	Updated bool // the user already had a row and overwrote it
}

// Reply is the outcome of one turn: zero or more prompts plus an optional
// completion event for the notifier.
type Reply struct {
	Prompts []Prompt
	Done    *Completion
}

func reply(prompts ...Prompt) Reply {
	return Reply{Prompts: prompts}
}

var askPrompts = map[registration.Field]Prompt{
	registration.FieldName:          {ID: PromptAskName, Keyboard: KbCancel},
	registration.FieldCar:           {ID: PromptAskCar, Keyboard: KbCancel},
	registration.FieldPlate:         {ID: PromptAskPlate, Keyboard: KbCancel},
	registration.FieldParticipation: {ID: PromptAskParticipation, Keyboard: KbYesNo},
	registration.FieldDiscipline:    {ID: PromptAskDiscipline, Keyboard: KbDiscipline},
	registration.FieldPhone:         {ID: PromptAskPhone, Keyboard: KbCancel},
	registration.FieldPeople:        {ID: PromptAskPeople, Keyboard: KbPeople},
	registration.FieldPhoto:         {ID: PromptAskPhoto, Keyboard: KbSkip},
}

var badPrompts = map[registration.Field]PromptID{
	registration.FieldName:          PromptBadName,
	registration.FieldCar:           PromptBadCar,
	registration.FieldPlate:         PromptBadPlate,
	registration.FieldParticipation: PromptBadChoice,
	registration.FieldDiscipline:    PromptBadChoice,
	registration.FieldPhone:         PromptBadPhone,
	registration.FieldPeople:        PromptBadPeople,
	registration.FieldPhoto:         PromptBadPhoto,
}
