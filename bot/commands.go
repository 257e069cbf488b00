package bot

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	tg "jeepfest-bot/core/telegram"
	"jeepfest-bot/core/telegram/commands"
	tghelpers "jeepfest-bot/core/telegram/helpers"
	"jeepfest-bot/export"
	"jeepfest-bot/registration"
	"jeepfest-bot/registration/flow"
	"jeepfest-bot/registration/i18n"
)

func (a *App) buildRegistry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.cmdStart,
		Description: "Начать регистрацию",
	})
	reg.RegisterCommand("/mydata", commands.Command{
		Handler:     a.cmdMyData,
		Description: "Показать мои данные",
	})
	reg.RegisterCommand("/edit", commands.Command{
		Handler:     a.cmdEdit,
		Description: "Изменить мои данные",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.cmdCancel,
		Description: "Отменить текущий диалог",
	})
	reg.RegisterCommand("/info", commands.Command{
		Handler:     a.cmdInfo,
		Description: "Информация о фестивале",
	})
	reg.RegisterCommand("/location", commands.Command{
		Handler:     a.cmdLocation,
		Description: "Место проведения",
	})
	if len(a.cfg.Flow.Locales) > 1 {
		reg.RegisterCommand("/lang", commands.Command{
			Handler:     a.cmdLang,
			Description: "Сменить язык / Tilni almashtirish",
		})
	}

	reg.RegisterCommand("/count", commands.Command{
		Handler:     a.cmdCount,
		Description: "Сколько заявок и людей",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/export", commands.Command{
		Handler:     a.cmdExport,
		Description: "Выгрузить заявки в CSV",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/report", commands.Command{
		Handler:     a.cmdReport,
		Description: "Полный список заявок",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/broadcast", commands.Command{
		Handler:     a.cmdBroadcast,
		Description: "Рассылка всем участникам",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.SetTextFallback(a.UnknownText())
	reg.SetCallbackNotFound(a.UnknownCallback())

	_ = reg.RegisterCallback("pay_confirm", a.cbPayConfirm)
	_ = reg.RegisterCallback("pay_reject", a.cbPayReject)

	return reg
}

func (a *App) cmdStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	s := a.sessions.Get(c.Sender().ID)
	locale := a.userLocale(ctx, c.Sender().ID)
	// Language is re-asked on every /start when several locales are enabled.
	s.Locale = ""

	welcome := a.catalog.Text(locale, i18n.MsgWelcome)
	if err := tghelpers.SendText(c, welcome); err != nil {
		return err
	}
	return a.deliver(ctx, c, s, a.engine.Begin(s))
}

func (a *App) cmdMyData(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	locale := a.userLocale(ctx, c.Sender().ID)

	reg, ok, err := a.currentRegistration(ctx, c, locale)
	if !ok || err != nil {
		return err
	}

	d := draftView(reg)
	text := a.catalog.Summary(locale, &d, a.engine.Fields())
	if line := payStatusLine(locale, reg.PayStatus); line != "" {
		text += line + "\n"
	}
	text += editHint(locale)
	return tghelpers.SendHTML(c, text, a.mainMenu(locale))
}

func (a *App) cmdEdit(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	locale := a.userLocale(ctx, c.Sender().ID)

	reg, ok, err := a.currentRegistration(ctx, c, locale)
	if !ok || err != nil {
		return err
	}

	s := a.sessions.Get(c.Sender().ID)
	return a.deliver(ctx, c, s, a.engine.BeginEdit(s, reg))
}

func (a *App) cmdCancel(c tele.Context) error {
	s := a.sessions.Get(c.Sender().ID)
	locale := a.sessionLocale(s)
	a.sessions.Clear(c.Sender().ID)
	return tghelpers.SendText(c,
		a.catalog.Prompt(locale, flow.Prompt{ID: flow.PromptCancelled}),
		&tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
}

func (a *App) cmdInfo(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	locale := a.userLocale(ctx, c.Sender().ID)
	return tghelpers.SendText(c,
		a.catalog.Text(locale, i18n.MsgInfo),
		&tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
}

func (a *App) cmdLocation(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	locale := a.userLocale(ctx, c.Sender().ID)
	return tghelpers.SendText(c,
		a.catalog.Text(locale, i18n.MsgLocation),
		&tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
}

func (a *App) cmdLang(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	s := a.sessions.Get(c.Sender().ID)
	s.Locale = ""
	return a.deliver(ctx, c, s, a.engine.Begin(s))
}

func (a *App) cmdCount(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	totals, err := export.Summary(ctx, a.repo)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Заявок: %d\nЧеловек: %d", totals.Registrations, totals.People))
}

func (a *App) cmdExport(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	out, err := export.CSV(ctx, a.repo)
	if err != nil {
		return err
	}
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(out)),
		FileName: "registrations.csv",
		MIME:     "text/csv",
	}
	return tghelpers.SendDocument(c, doc)
}

// reportChunkLimit keeps each report message under the Telegram text cap.
const reportChunkLimit = 3500

func (a *App) cmdReport(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	regs, err := a.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(regs) == 0 {
		return tghelpers.SendText(c, "Заявок пока нет.")
	}

	payMarks := map[string]string{
		registration.PayPaid:    "💰",
		registration.PayUnpaid:  "🚫",
		registration.PayPending: "⏳",
	}

	var people, paid, pending, unpaid, racers int
	var b strings.Builder
	for _, r := range regs {
		people += r.People
		switch r.PayStatus {
		case registration.PayPaid:
			paid++
		case registration.PayUnpaid:
			unpaid++
		default:
			pending++
		}
		if r.Participation != nil && *r.Participation {
			racers++
		}

		fmt.Fprintf(&b, "%s #%d %s — %s", payMarks[r.PayStatus], r.ID, r.Name, r.Car)
		if r.Phone != nil {
			fmt.Fprintf(&b, " — %s", *r.Phone)
		}
		fmt.Fprintf(&b, " — %d чел.", r.People)
		if r.Discipline != nil {
			fmt.Fprintf(&b, " [%s]", *r.Discipline)
		}
		b.WriteByte('\n')

		if b.Len() >= reportChunkLimit {
			if err := tghelpers.SendText(c, strings.TrimRight(b.String(), "\n")); err != nil {
				return err
			}
			b.Reset()
		}
	}

	fmt.Fprintf(&b, "\nЗаявок: %d, человек: %d\n", len(regs), people)
	fmt.Fprintf(&b, "Оплачено: %d, ожидает: %d, отклонено: %d", paid, pending, unpaid)
	if racers > 0 {
		fmt.Fprintf(&b, "\nУчастников гонки: %d", racers)
	}
	return tghelpers.SendText(c, strings.TrimLeft(b.String(), "\n"))
}

func (a *App) cmdBroadcast(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	var text string
	if msg := c.Message(); msg != nil {
		text = strings.TrimSpace(msg.Payload)
	}
	if text == "" {
		return tghelpers.SendText(c, "Использование: /broadcast <текст>")
	}

	ids, err := a.repo.ListTgIDs(ctx)
	if err != nil {
		return err
	}
	a.notifier.BroadcastText(ctx, ids, text)
	return tghelpers.SendText(c, fmt.Sprintf("Отправлено %d получателям.", len(ids)))
}

// handleUnknownText serves the resting state: main menu button taps and the
// one-message inline registration shortcut.
func (a *App) handleUnknownText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	locale := a.userLocale(ctx, c.Sender().ID)
	text := strings.ToLower(strings.TrimSpace(c.Text()))

	switch {
	case containsAny(text, "регистрац", "ro‘yxat", "royxat"):
		return a.cmdStart(c)
	case containsAny(text, "мои данные", "mening"):
		return a.cmdMyData(c)
	case containsAny(text, "инфо", "ma’lumot", "malumot"):
		return a.cmdInfo(c)
	case containsAny(text, "локация", "manzil"):
		return a.cmdLocation(c)
	}

	if strings.Contains(text, ",") {
		s := a.sessions.Get(c.Sender().ID)
		reply, err := a.engine.OneShot(ctx, c.Sender().ID, locale, c.Text())
		switch {
		case err == nil:
			return a.deliver(ctx, c, s, reply)
		case errors.Is(err, registration.ErrNotInline):
			// Not the batch format, fall through to the generic reply.
		default:
			var invalid *registration.ValidationError
			if errors.As(err, &invalid) {
				return tghelpers.SendText(c,
					a.catalog.Text(locale, i18n.MsgBadInline),
					&tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
			}
			return tghelpers.SendText(c, a.catalog.Text(locale, i18n.MsgRetryLater))
		}
	}

	return tghelpers.SendText(c,
		a.catalog.Text(locale, i18n.MsgWelcome),
		&tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// draftView rebuilds a display draft from a stored record for /mydata.
func draftView(reg registration.Registration) registration.Draft {
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
	return d
}

func payStatusLine(locale, status string) string {
	ru := map[string]string{
		registration.PayPaid:    "Оплата: подтверждена",
		registration.PayUnpaid:  "Оплата: отклонена",
		registration.PayPending: "Оплата: ожидает подтверждения",
	}
	uz := map[string]string{
		registration.PayPaid:    "To‘lov: tasdiqlangan",
		registration.PayUnpaid:  "To‘lov: rad etilgan",
		registration.PayPending: "To‘lov: tasdiqlanishi kutilmoqda",
	}
	m := ru
	if locale == "uz" {
		m = uz
	}
	if line, ok := m[status]; ok {
		return line
	}
	return ""
}

func editHint(locale string) string {
	if locale == "uz" {
		return "O‘zgartirish uchun: /edit"
	}
	return "Изменить данные: /edit"
}
