package flow

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"jeepfest-bot/core/logger"
	"jeepfest-bot/registration"
	"jeepfest-bot/storage"
)

// Config declares one deployment variant of the conversation.
type Config struct {
	// Fields is the ordered list of collected fields; optional branches
	// (plate, participation, discipline, photo) exist only when listed.
	Fields []registration.Field
	// Locales offered at the start of the conversation. A single locale
	// skips the language step entirely.
	Locales []string
	// StrictPhone, when set, is matched against the normalized phone number
	// in addition to the permissive format check.
	StrictPhone *regexp.Regexp
}

// Engine is the transition function of the conversation. It owns no session
// storage: callers pass the session, which the turn mutates exclusively
// (same-identity turns are serialized upstream).
type Engine struct {
	fields      []registration.Field
	locales     []string
	strictPhone *regexp.Regexp
	repo        storage.Repository
}

// New builds an engine over the given repository.
func New(cfg Config, repo storage.Repository) *Engine {
	fields := cfg.Fields
	if len(fields) == 0 {
		fields = registration.DefaultFields
	}
	locales := cfg.Locales
	if len(locales) == 0 {
		locales = []string{"ru"}
	}
	return &Engine{
		fields:      append([]registration.Field(nil), fields...),
		locales:     append([]string(nil), locales...),
		strictPhone: cfg.StrictPhone,
		repo:        repo,
	}
}

// Fields exposes the configured sequence (used by tests and summaries).
func (e *Engine) Fields() []registration.Field {
	return append([]registration.Field(nil), e.fields...)
}

func (s *Session) reset() {
	s.State = StateIdle
	s.Draft = registration.Draft{Lang: s.Locale}
	s.Editing = false
}

// Begin starts a fresh conversation, discarding any accumulated draft.
func (e *Engine) Begin(s *Session) Reply {
	s.Draft = registration.Draft{}
	s.Editing = false
	if len(e.locales) > 1 && s.Locale == "" {
		s.State = StateLang
		return reply(Prompt{ID: PromptChooseLang, Keyboard: KbLang})
	}
	if s.Locale == "" {
		s.Locale = e.locales[0]
	}
	s.Draft.Lang = s.Locale
	return e.enter(s, e.fields[0])
}

// BeginEdit starts the edit loop over an existing registration: the draft is
// pre-filled so each prior answer can be kept or overwritten.
func (e *Engine) BeginEdit(s *Session, reg registration.Registration) Reply {
	s.Locale = reg.Lang
	s.Draft = draftFrom(reg)
	s.Editing = true
	return e.enter(s, e.fields[0])
}

func draftFrom(reg registration.Registration) registration.Draft {
	d := registration.Draft{
		Lang:          reg.Lang,
		Name:          reg.Name,
		Car:           reg.Car,
		People:        reg.People,
		Participation: reg.Participation,
	}
	if reg.Plate != nil {
		d.Plate = *reg.Plate
	}
	if reg.Phone != nil {
		d.Phone = *reg.Phone
	}
	if reg.Discipline != nil {
		d.Discipline = *reg.Discipline
	}
	if reg.PhotoFileID != nil {
		d.PhotoFileID = *reg.PhotoFileID
	}
	return d
}

// Step consumes one inbound event for an active session and returns the
// prompts to send. A rejected input never mutates the session: the same
// prompt is re-emitted and the turn ends.
func (e *Engine) Step(ctx context.Context, s *Session, in Input) (Reply, error) {
	switch {
	case s.State == StateLang:
		return e.stepLang(s, in), nil
	case s.State == StateConfirm:
		return e.stepConfirm(ctx, s, in)
	default:
		if f, ok := CollectedField(s.State); ok {
			return e.stepCollect(s, f, in), nil
		}
	}
	// Idle or unknown state: restart cleanly.
	return e.Begin(s), nil
}

func (e *Engine) stepLang(s *Session, in Input) Reply {
	locale, ok := parseLocale(in.Text)
	if !ok {
		return reply(Prompt{ID: PromptChooseLang, Keyboard: KbLang})
	}
	s.Locale = locale
	s.Draft.Lang = locale
	return e.enter(s, e.fields[0])
}

func parseLocale(text string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(t, "рус") || strings.Contains(t, "🇷🇺"):
		return "ru", true
	case strings.Contains(t, "zbek") || strings.Contains(t, "🇺🇿") || strings.Contains(t, "uz"):
		return "uz", true
	}
	return "", false
}

func (e *Engine) stepCollect(s *Session, f registration.Field, in Input) Reply {
	switch registration.ClassifyIntent(in.Text) {
	case registration.IntentCancel:
		s.reset()
		return reply(Prompt{ID: PromptCancelled, Keyboard: KbMain})
	case registration.IntentSkip:
		// Keeping the previous answer is allowed while editing; the photo
		// step is skippable in any mode since the field is optional.
		if (s.Editing && s.Draft.Filled(f)) || f == registration.FieldPhoto {
			return e.advance(s, f)
		}
	}

	if err := e.applyField(s, f, in); err != nil {
		p := askPrompts[f]
		return reply(Prompt{ID: badPrompts[f], Keyboard: p.Keyboard})
	}
	return e.advance(s, f)
}

// applyField validates raw input for one field and merges the normalized
// value into the draft. Validators are pure, so a rejection leaves the
// session exactly as it was.
func (e *Engine) applyField(s *Session, f registration.Field, in Input) error {
	switch f {
	case registration.FieldName:
		v, err := registration.ValidateName(in.Text)
		if err != nil {
			return err
		}
		s.Draft.Name = v
	case registration.FieldCar:
		v, err := registration.ValidateCar(in.Text)
		if err != nil {
			return err
		}
		s.Draft.Car = v
	case registration.FieldPlate:
		v, err := registration.ValidatePlate(in.Text)
		if err != nil {
			return err
		}
		s.Draft.Plate = v
	case registration.FieldParticipation:
		v, ok := registration.ParseYesNo(in.Text)
		if !ok {
			return &registration.ValidationError{Field: f, Reason: "unrecognized"}
		}
		s.Draft.Participation = &v
		if !v {
			s.Draft.Discipline = ""
		}
	case registration.FieldDiscipline:
		v, ok := registration.ParseDiscipline(in.Text)
		if !ok {
			return &registration.ValidationError{Field: f, Reason: "unrecognized"}
		}
		s.Draft.Discipline = v
	case registration.FieldPhone:
		v, err := registration.ValidatePhone(in.Text, e.strictPhone)
		if err != nil {
			return err
		}
		s.Draft.Phone = v
	case registration.FieldPeople:
		v, err := registration.ValidatePeople(in.Text)
		if err != nil {
			return err
		}
		s.Draft.People = v
	case registration.FieldPhoto:
		if in.MediaRef == "" {
			return &registration.ValidationError{Field: f, Reason: "no photo"}
		}
		s.Draft.PhotoFileID = in.MediaRef
	}
	return nil
}

// sequence returns the effective field order for the current draft: the
// discipline step exists only while race participation is affirmative.
func (e *Engine) sequence(d *registration.Draft) []registration.Field {
	fields := make([]registration.Field, 0, len(e.fields))
	for _, f := range e.fields {
		if f == registration.FieldDiscipline &&
			d.Participation != nil && !*d.Participation {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func (e *Engine) advance(s *Session, after registration.Field) Reply {
	seq := e.sequence(&s.Draft)
	for i, f := range seq {
		if f != after {
			continue
		}
		if i+1 < len(seq) {
			return e.enter(s, seq[i+1])
		}
		break
	}
	s.State = StateConfirm
	return reply(Prompt{ID: PromptSummary, Keyboard: KbConfirm})
}

func (e *Engine) enter(s *Session, f registration.Field) Reply {
	s.State = Collecting(f)
	p := askPrompts[f]
	if s.Editing && s.Draft.Filled(f) {
		// Offer to keep the previous answer instead of retyping it.
		keep := Prompt{
			ID:       PromptKeepCurrent,
			Args:     []any{s.Draft.Current(f)},
			Keyboard: KbSkip,
		}
		return reply(Prompt{ID: p.ID}, keep)
	}
	return reply(p)
}

func (e *Engine) stepConfirm(ctx context.Context, s *Session, in Input) (Reply, error) {
	switch registration.ClassifyIntent(in.Text) {
	case registration.IntentConfirm:
		return e.commit(ctx, s)
	case registration.IntentEdit:
		s.Editing = true
		return e.enter(s, e.fields[0]), nil
	case registration.IntentBack:
		seq := e.sequence(&s.Draft)
		return e.enter(s, seq[len(seq)-1]), nil
	case registration.IntentCancel:
		s.reset()
		return reply(Prompt{ID: PromptCancelled, Keyboard: KbMain}), nil
	}
	// Anything else re-shows the confirmation screen unchanged.
	return reply(Prompt{ID: PromptSummary, Keyboard: KbConfirm}), nil
}

// commit hands the accumulated draft to the repository. On a uniqueness
// conflict the session stays in the confirmation state so the user can pick
// edit and fix the offending field; on storage failure the session is left
// untouched and the error propagates for a retry-later reply.
func (e *Engine) commit(ctx context.Context, s *Session) (Reply, error) {
	rec := s.Draft.Record(s.TgID)
	id, err := e.repo.Upsert(ctx, rec)
	if err != nil {
		var conflict *storage.ConflictError
		if errors.As(err, &conflict) {
			logger.Warn(ctx, "service.registrations", "commit.conflict",
				slog.String("status", "fail"),
				slog.Int64("user_id", s.TgID),
				slog.String("field", string(conflict.Field)),
			)
			return reply(Prompt{
				ID:       PromptConflict,
				Args:     []any{string(conflict.Field)},
				Keyboard: KbConfirm,
			}), nil
		}
		return Reply{}, err
	}

	done := &Completion{RegID: id, Reg: rec, Updated: s.Editing}
	done.Reg.ID = id

	logger.Info(ctx, "service.registrations", "commit.ok",
		slog.String("status", "ok"),
		slog.Int64("user_id", s.TgID),
		slog.Int64("reg_id", id),
		slog.Int("people", rec.People),
	)

	doneID := PromptDone
	if done.Updated {
		doneID = PromptUpdated
	}
	s.reset()
	return Reply{
		Prompts: []Prompt{
			{ID: doneID, Args: []any{id}, Keyboard: KbMain},
			{ID: PromptPaymentInfo},
		},
		Done: done,
	}, nil
}

// OneShot handles the stateless batch path: every field arrives in one
// message and either the whole input is accepted and persisted, or it is
// rejected with a combined error and no partial state is kept.
func (e *Engine) OneShot(ctx context.Context, tgID int64, locale, text string) (Reply, error) {
	draft, err := registration.ParseInline(text)
	if err != nil {
		return Reply{}, err
	}
	draft.Lang = locale

	s := Session{TgID: tgID, Locale: locale, Draft: draft}
	return e.commit(ctx, &s)
}
