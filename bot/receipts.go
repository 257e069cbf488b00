package bot

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"jeepfest-bot/core/telegram/callbacks"
	tghelpers "jeepfest-bot/core/telegram/helpers"
	"jeepfest-bot/registration"
	"jeepfest-bot/registration/i18n"
	"jeepfest-bot/storage"
)

// handleReceiptPhoto stores a payment receipt photo arriving outside any
// conversation and forwards it to admins for review.
func (a *App) handleReceiptPhoto(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	locale := a.userLocale(ctx, c.Sender().ID)

	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return nil
	}
	fileID := msg.Photo.FileID

	reg, err := a.repo.GetByTgID(ctx, c.Sender().ID)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.SendText(c,
			a.catalog.Text(locale, i18n.MsgReceiptNoReg),
			&tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
	}
	if err != nil {
		return err
	}

	if err := a.repo.SetReceipt(ctx, reg.ID, fileID); err != nil {
		return err
	}
	a.notifier.ReceiptSubmitted(ctx, reg, fileID)

	return tghelpers.SendText(c,
		a.catalog.Text(locale, i18n.MsgReceiptAccepted),
		&tele.SendOptions{ReplyMarkup: a.mainMenu(locale)})
}

func (a *App) cbPayConfirm(c tele.Context) error {
	return a.resolvePayment(c, registration.PayPaid, i18n.MsgPaymentConfirmed)
}

func (a *App) cbPayReject(c tele.Context) error {
	return a.resolvePayment(c, registration.PayUnpaid, i18n.MsgPaymentRejected)
}

// resolvePayment applies an admin's verdict from the receipt review buttons
// and tells the registrant in their own language.
func (a *App) resolvePayment(c tele.Context, status, msgID string) error {
	ctx := tghelpers.BuildContext(c)

	// The callback router has already answered the query; reply with messages.
	if !a.cfg.Telegram.IsAdmin(c.Sender().ID) {
		return tghelpers.SendText(c, "Недостаточно прав.")
	}

	regID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return tghelpers.SendText(c, "Некорректные данные кнопки.")
	}

	reg, err := a.repo.GetByID(ctx, regID)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.SendText(c, fmt.Sprintf("Заявка #%d не найдена.", regID))
	}
	if err != nil {
		return err
	}

	if err := a.repo.UpdatePaymentStatus(ctx, regID, status); err != nil {
		return err
	}
	a.notifier.Direct(ctx, reg.TgID, a.catalog.Text(reg.Lang, msgID))

	verdict := "✅ Оплата подтверждена"
	if status == registration.PayUnpaid {
		verdict = "❌ Оплата отклонена"
	}

	// Strip the buttons so the verdict cannot be applied twice by accident.
	if msg := c.Message(); msg != nil && msg.Caption != "" {
		return c.EditCaption(fmt.Sprintf("%s\n\n%s (#%d)", msg.Caption, verdict, regID))
	}
	return tghelpers.SendText(c, fmt.Sprintf("%s (#%d)", verdict, regID))
}
