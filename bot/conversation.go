package bot

import (
	"context"
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"jeepfest-bot/core/logger"
	tghelpers "jeepfest-bot/core/telegram/helpers"
	"jeepfest-bot/registration"
	"jeepfest-bot/registration/flow"
	"jeepfest-bot/registration/i18n"
	"jeepfest-bot/storage"
)

// handleTurn feeds one update into the user's conversation and renders the
// resulting prompts.
func (a *App) handleTurn(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	s := a.sessions.Get(c.Sender().ID)

	in := flow.Input{Text: c.Text()}
	if msg := c.Message(); msg != nil && msg.Photo != nil {
		in.MediaRef = msg.Photo.FileID
	}

	reply, err := a.engine.Step(ctx, s, in)
	if err != nil {
		logger.Error(ctx, "service.registrations", "turn.fail",
			slog.String("status", "fail"),
			slog.Int64("user_id", s.TgID),
			slog.String("err", err.Error()),
		)
		locale := a.sessionLocale(s)
		return tghelpers.SendText(c, a.catalog.Text(locale, i18n.MsgRetryLater))
	}
	return a.deliver(ctx, c, s, reply)
}

// deliver renders the engine reply for the session's locale and fires the
// completion notification when a registration was persisted.
func (a *App) deliver(ctx context.Context, c tele.Context, s *flow.Session, reply flow.Reply) error {
	locale := a.sessionLocale(s)

	for _, p := range reply.Prompts {
		markup := a.markup(locale, p.Keyboard)

		// The summary carries escaped user values and is sent as HTML.
		if p.ID == flow.PromptSummary {
			text := a.catalog.Summary(locale, &s.Draft, a.engine.Fields())
			if err := tghelpers.SendHTML(c, text, markup); err != nil {
				return err
			}
			continue
		}

		opts := &tele.SendOptions{}
		if markup != nil {
			opts.ReplyMarkup = markup
		}
		if err := tghelpers.SendText(c, a.catalog.Prompt(locale, p), opts); err != nil {
			return err
		}
	}

	if reply.Done != nil {
		a.notifier.RegistrationCompleted(ctx, reply.Done.Reg, reply.Done.Updated)
	}
	return nil
}

// sessionLocale resolves the locale used to render replies mid-conversation.
func (a *App) sessionLocale(s *flow.Session) string {
	if s != nil && s.Locale != "" {
		return s.Locale
	}
	return i18n.DefaultLocale
}

// userLocale resolves a locale for users outside a conversation, falling back
// to the language stored with their registration.
func (a *App) userLocale(ctx context.Context, userID int64) string {
	if s, ok := a.sessions.Peek(userID); ok && s.Locale != "" {
		return s.Locale
	}
	if reg, err := tghelpers.CurrentRecord[registration.Registration](ctx, a.repo, userID); err == nil && reg.Lang != "" {
		return reg.Lang
	}
	return i18n.DefaultLocale
}

// currentRegistration loads the sender's stored record, or replies with the
// not-registered hint when there is none.
func (a *App) currentRegistration(ctx context.Context, c tele.Context, locale string) (registration.Registration, bool, error) {
	r, err := tghelpers.CurrentRecord[registration.Registration](ctx, a.repo, c.Sender().ID)
	if errors.Is(err, storage.ErrNotFound) {
		return registration.Registration{}, false, tghelpers.SendText(c,
			a.catalog.Text(locale, i18n.MsgNotRegistered), &tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
	}
	if err != nil {
		return registration.Registration{}, false, err
	}
	return r, true, nil
}
