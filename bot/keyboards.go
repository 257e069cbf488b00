package bot

import (
	tele "gopkg.in/telebot.v4"

	"jeepfest-bot/core/telegram/keyboard"
	"jeepfest-bot/registration/flow"
	"jeepfest-bot/registration/i18n"
)

// markup translates an engine keyboard hint into a localized reply keyboard.
func (a *App) markup(locale string, kb flow.Keyboard) *tele.ReplyMarkup {
	btn := func(id string) string { return a.catalog.Button(locale, id) }

	switch kb {
	case flow.KbMain:
		return keyboard.ReplyButtons(
			[]string{btn(i18n.BtnRegister), btn(i18n.BtnMyData)},
			[]string{btn(i18n.BtnInfo), btn(i18n.BtnLocation)},
		)
	case flow.KbLang:
		return keyboard.ReplyButtons(
			[]string{btn(i18n.BtnLangRU), btn(i18n.BtnLangUZ)},
		)
	case flow.KbCancel:
		return keyboard.ReplyButtons(
			[]string{btn(i18n.BtnCancel)},
		)
	case flow.KbSkip:
		return keyboard.ReplyButtons(
			[]string{btn(i18n.BtnSkip)},
			[]string{btn(i18n.BtnCancel)},
		)
	case flow.KbConfirm:
		return keyboard.ReplyButtons(
			[]string{btn(i18n.BtnConfirm), btn(i18n.BtnEdit)},
			[]string{btn(i18n.BtnBack), btn(i18n.BtnCancel)},
		)
	case flow.KbYesNo:
		return keyboard.ReplyButtons(
			[]string{btn(i18n.BtnYes), btn(i18n.BtnNo)},
			[]string{btn(i18n.BtnCancel)},
		)
	case flow.KbDiscipline:
		return keyboard.ReplyButtons(
			[]string{btn(i18n.BtnTrial), btn(i18n.BtnSprint)},
			[]string{btn(i18n.BtnCancel)},
		)
	case flow.KbPeople:
		return keyboard.ReplyButtons(
			[]string{"1", "2", "3", "4", "5"},
			[]string{btn(i18n.BtnCancel)},
		)
	case flow.KbRemove:
		return keyboard.RemoveKeyboard()
	}
	return nil
}

// mainMenu is the resting-state keyboard shown outside conversations.
func (a *App) mainMenu(locale string) *tele.ReplyMarkup {
	return a.markup(locale, flow.KbMain)
}
