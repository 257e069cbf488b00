package flow

import (
	"context"
	"testing"

	"jeepfest-bot/registration"
	"jeepfest-bot/storage"
)

func newTestEngine(t *testing.T, fields ...registration.Field) (*Engine, *storage.MemoryRepository) {
	t.Helper()
	repo := storage.NewMemory()
	cfg := Config{Locales: []string{"ru"}}
	if len(fields) > 0 {
		cfg.Fields = fields
	}
	return New(cfg, repo), repo
}

func step(t *testing.T, e *Engine, s *Session, text string) Reply {
	t.Helper()
	r, err := e.Step(context.Background(), s, Input{Text: text})
	if err != nil {
		t.Fatalf("step %q: %v", text, err)
	}
	return r
}

func firstPrompt(t *testing.T, r Reply) Prompt {
	t.Helper()
	if len(r.Prompts) == 0 {
		t.Fatal("reply has no prompts")
	}
	return r.Prompts[0]
}

func TestHappyPath(t *testing.T) {
	e, repo := newTestEngine(t)
	s := &Session{TgID: 100}

	r := e.Begin(s)
	if got := firstPrompt(t, r).ID; got != PromptAskName {
		t.Fatalf("first prompt = %s, want %s", got, PromptAskName)
	}

	step(t, e, s, "Akbar")
	step(t, e, s, "Jeep Grand Cherokee")
	step(t, e, s, "+998 90 111-22-33")
	r = step(t, e, s, "нас будет 3")
	if s.State != StateConfirm {
		t.Fatalf("state after last field = %s, want %s", s.State, StateConfirm)
	}
	if got := firstPrompt(t, r).ID; got != PromptSummary {
		t.Fatalf("prompt = %s, want %s", got, PromptSummary)
	}

	r = step(t, e, s, "✅ Подтвердить")
	if r.Done == nil {
		t.Fatal("confirm did not complete the registration")
	}
	if r.Done.Updated {
		t.Error("fresh registration reported as updated")
	}
	if s.State != StateIdle {
		t.Errorf("session not cleared after completion: state = %s", s.State)
	}

	reg, err := repo.GetByTgID(context.Background(), 100)
	if err != nil {
		t.Fatalf("GetByTgID: %v", err)
	}
	if reg.Name != "Akbar" || reg.People != 3 {
		t.Errorf("stored record = %q/%d, want Akbar/3", reg.Name, reg.People)
	}
	if reg.Phone == nil || *reg.Phone != "+998901112233" {
		t.Errorf("stored phone = %v, want normalized +998901112233", reg.Phone)
	}
	if reg.PayStatus != registration.PayPending {
		t.Errorf("pay status = %q, want %q", reg.PayStatus, registration.PayPending)
	}
}

func TestRejectedInputKeepsState(t *testing.T) {
	e, _ := newTestEngine(t)
	s := &Session{TgID: 7}
	e.Begin(s)
	step(t, e, s, "Akbar")
	step(t, e, s, "UAZ Patriot")
	step(t, e, s, "+998901112233")

	before := *s
	r := step(t, e, s, "тысяча")
	if got := firstPrompt(t, r).ID; got != PromptBadPeople {
		t.Fatalf("prompt = %s, want %s", got, PromptBadPeople)
	}
	if *s != before {
		t.Error("rejected input mutated the session")
	}

	r = step(t, e, s, "2")
	if s.State != StateConfirm {
		t.Errorf("valid retry did not advance: state = %s", s.State)
	}
	if got := firstPrompt(t, r).ID; got != PromptSummary {
		t.Errorf("prompt = %s, want %s", got, PromptSummary)
	}
}

func TestLanguageStep(t *testing.T) {
	repo := storage.NewMemory()
	e := New(Config{Locales: []string{"ru", "uz"}}, repo)
	s := &Session{TgID: 1}

	r := e.Begin(s)
	if got := firstPrompt(t, r).ID; got != PromptChooseLang {
		t.Fatalf("prompt = %s, want %s", got, PromptChooseLang)
	}

	r = step(t, e, s, "какая-то чепуха")
	if got := firstPrompt(t, r).ID; got != PromptChooseLang {
		t.Fatalf("unrecognized locale answer must re-prompt, got %s", got)
	}

	r = step(t, e, s, "🇺🇿 O‘zbekcha")
	if s.Locale != "uz" {
		t.Errorf("locale = %q, want uz", s.Locale)
	}
	if got := firstPrompt(t, r).ID; got != PromptAskName {
		t.Errorf("prompt = %s, want %s", got, PromptAskName)
	}
}

func TestEditLoopKeepsOtherFields(t *testing.T) {
	e, repo := newTestEngine(t)
	s := &Session{TgID: 9}
	e.Begin(s)
	step(t, e, s, "Akbar")
	step(t, e, s, "Jeep Grand")
	step(t, e, s, "+998901112233")
	step(t, e, s, "3")

	r := step(t, e, s, "✏️ Изменить")
	if !s.Editing {
		t.Fatal("edit intent did not enter editing mode")
	}
	if got := firstPrompt(t, r).ID; got != PromptAskName {
		t.Fatalf("edit loop must restart at the first field, got %s", got)
	}
	if len(r.Prompts) < 2 || r.Prompts[1].ID != PromptKeepCurrent {
		t.Fatal("editing a filled field must offer to keep the current value")
	}

	step(t, e, s, "➡️ Пропустить") // keep name
	step(t, e, s, "UAZ Hunter")    // change car
	step(t, e, s, "➡️ Пропустить") // keep phone
	step(t, e, s, "➡️ Пропустить") // keep people
	r = step(t, e, s, "✅ Подтвердить")
	if r.Done == nil {
		t.Fatal("edit confirm did not complete")
	}

	reg, err := repo.GetByTgID(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetByTgID: %v", err)
	}
	if reg.Name != "Akbar" || reg.Car != "UAZ Hunter" || reg.People != 3 {
		t.Errorf("after edit: %q/%q/%d, want Akbar/UAZ Hunter/3", reg.Name, reg.Car, reg.People)
	}
}

func TestBackFromConfirm(t *testing.T) {
	e, _ := newTestEngine(t)
	s := &Session{TgID: 2}
	e.Begin(s)
	step(t, e, s, "Akbar")
	step(t, e, s, "Jeep Grand")
	step(t, e, s, "+998901112233")
	step(t, e, s, "3")

	r := step(t, e, s, "⬅ Назад")
	if s.State != Collecting(registration.FieldPeople) {
		t.Fatalf("state = %s, want collecting people", s.State)
	}
	if got := firstPrompt(t, r).ID; got != PromptAskPeople {
		t.Errorf("prompt = %s, want %s", got, PromptAskPeople)
	}

	step(t, e, s, "5")
	if s.State != StateConfirm {
		t.Errorf("re-answer did not return to confirm: state = %s", s.State)
	}
	if s.Draft.People != 5 {
		t.Errorf("people = %d, want 5", s.Draft.People)
	}
}

func TestCancelClearsSession(t *testing.T) {
	e, repo := newTestEngine(t)
	s := &Session{TgID: 3}
	e.Begin(s)
	step(t, e, s, "Akbar")

	r := step(t, e, s, "❌ Отмена")
	if got := firstPrompt(t, r).ID; got != PromptCancelled {
		t.Fatalf("prompt = %s, want %s", got, PromptCancelled)
	}
	if s.State != StateIdle || s.Draft.Name != "" {
		t.Error("cancel did not clear the session")
	}
	if _, err := repo.GetByTgID(context.Background(), 3); err != storage.ErrNotFound {
		t.Errorf("cancelled conversation must persist nothing, got %v", err)
	}
}

func TestUnknownIntentAtConfirmRepeatsSummary(t *testing.T) {
	e, _ := newTestEngine(t)
	s := &Session{TgID: 4}
	e.Begin(s)
	step(t, e, s, "Akbar")
	step(t, e, s, "Jeep Grand")
	step(t, e, s, "+998901112233")
	step(t, e, s, "3")

	r := step(t, e, s, "что-что?")
	if got := firstPrompt(t, r).ID; got != PromptSummary {
		t.Fatalf("prompt = %s, want %s", got, PromptSummary)
	}
	if s.State != StateConfirm {
		t.Errorf("state = %s, want %s", s.State, StateConfirm)
	}
}

func TestRepeatRegistrationOverwrites(t *testing.T) {
	e, repo := newTestEngine(t)
	s := &Session{TgID: 5}

	run := func(name string) {
		e.Begin(s)
		step(t, e, s, name)
		step(t, e, s, "Jeep Grand")
		step(t, e, s, "+998901112233")
		step(t, e, s, "3")
		if r := step(t, e, s, "✅"); r.Done == nil {
			t.Fatalf("confirm for %q did not complete", name)
		}
	}
	run("Akbar")
	run("Anvar")

	regs, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("got %d rows, want 1", len(regs))
	}
	if regs[0].Name != "Anvar" {
		t.Errorf("name = %q, want Anvar", regs[0].Name)
	}
}

func TestConflictStaysOnConfirm(t *testing.T) {
	e, repo := newTestEngine(t)
	phone := "+998901112233"
	if _, err := repo.Upsert(context.Background(), registration.Registration{
		TgID: 1, Name: "First", Car: "Jeep", Phone: &phone, People: 2,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := &Session{TgID: 2}
	e.Begin(s)
	step(t, e, s, "Second")
	step(t, e, s, "UAZ Patriot")
	step(t, e, s, phone)
	step(t, e, s, "4")

	r := step(t, e, s, "✅ Подтвердить")
	if r.Done != nil {
		t.Fatal("conflicting confirm must not complete")
	}
	p := firstPrompt(t, r)
	if p.ID != PromptConflict {
		t.Fatalf("prompt = %s, want %s", p.ID, PromptConflict)
	}
	if s.State != StateConfirm {
		t.Errorf("state = %s, want %s (draft must survive the conflict)", s.State, StateConfirm)
	}
	if s.Draft.Name != "Second" {
		t.Error("draft lost after conflict")
	}
}

func TestParticipationBranch(t *testing.T) {
	fields := []registration.Field{
		registration.FieldName,
		registration.FieldCar,
		registration.FieldParticipation,
		registration.FieldDiscipline,
		registration.FieldPhone,
		registration.FieldPeople,
	}

	t.Run("yes asks discipline", func(t *testing.T) {
		e, _ := newTestEngine(t, fields...)
		s := &Session{TgID: 11}
		e.Begin(s)
		step(t, e, s, "Akbar")
		step(t, e, s, "Jeep Grand")
		r := step(t, e, s, "Да")
		if got := firstPrompt(t, r).ID; got != PromptAskDiscipline {
			t.Fatalf("prompt = %s, want %s", got, PromptAskDiscipline)
		}
		step(t, e, s, "Спринт")
		if s.Draft.Discipline != registration.DisciplineSprint {
			t.Errorf("discipline = %q, want %q", s.Draft.Discipline, registration.DisciplineSprint)
		}
	})

	t.Run("no skips discipline", func(t *testing.T) {
		e, _ := newTestEngine(t, fields...)
		s := &Session{TgID: 12}
		e.Begin(s)
		step(t, e, s, "Akbar")
		step(t, e, s, "Jeep Grand")
		r := step(t, e, s, "Нет")
		if got := firstPrompt(t, r).ID; got != PromptAskPhone {
			t.Fatalf("prompt = %s, want %s (discipline must be skipped)", got, PromptAskPhone)
		}
	})
}

func TestOneShot(t *testing.T) {
	e, repo := newTestEngine(t)

	r, err := e.OneShot(context.Background(), 42, "ru", "Akbar, Jeep Grand, +998901112233, 3")
	if err != nil {
		t.Fatalf("OneShot: %v", err)
	}
	if r.Done == nil {
		t.Fatal("one-shot input did not complete")
	}
	reg, err := repo.GetByTgID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByTgID: %v", err)
	}
	if reg.People != 3 || reg.Lang != "ru" {
		t.Errorf("stored %d/%q, want 3/ru", reg.People, reg.Lang)
	}

	if _, err := e.OneShot(context.Background(), 43, "ru", "Akbar, Jeep, badphone, zero"); err == nil {
		t.Fatal("invalid one-shot input must fail")
	}
	if _, err := repo.GetByTgID(context.Background(), 43); err != storage.ErrNotFound {
		t.Errorf("failed one-shot must persist nothing, got %v", err)
	}
}
