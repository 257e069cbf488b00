// Package notify fans registration events out to festival admins. Delivery is
// best effort: one unreachable admin never blocks the others, and the user's
// own flow already succeeded by the time a notification is queued.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"jeepfest-bot/core/logger"
	"jeepfest-bot/core/telegram/sender"
	"jeepfest-bot/registration"
)

// Notifier sends admin notifications through the shared outbound dispatcher.
type Notifier struct {
	admins []int64

	bot  *tele.Bot
	disp *sender.Dispatcher
}

// New creates a notifier for the given admin list. Attach must be called once
// the bot runtime is up.
func New(admins []int64) *Notifier {
	return &Notifier{admins: append([]int64(nil), admins...)}
}

// Attach wires the live bot and dispatcher. Until attached, notifications are
// dropped with a warning.
func (n *Notifier) Attach(bot *tele.Bot, disp *sender.Dispatcher) {
	n.bot = bot
	n.disp = disp
}

func (n *Notifier) send(ctx context.Context, chatID int64, what any, opts ...any) {
	if n.bot == nil {
		logger.Warn(ctx, "service.notify", "send.skip",
			slog.String("status", "skip"),
			slog.Int64("chat_id", chatID),
		)
		return
	}
	run := func() error {
		_, err := n.bot.Send(&tele.User{ID: chatID}, what, opts...)
		return err
	}
	if n.disp == nil {
		if err := run(); err != nil {
			logger.Error(ctx, "service.notify", "send.fail",
				slog.String("status", "fail"),
				slog.Int64("chat_id", chatID),
				slog.String("err", err.Error()),
			)
		}
		return
	}
	if err := n.disp.Enqueue(ctx, "notify", "sendMessage", run); err != nil {
		logger.Warn(ctx, "service.notify", "enqueue.fail",
			slog.String("status", "fail"),
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
	}
}

func (n *Notifier) broadcast(ctx context.Context, what any, opts ...any) {
	for _, admin := range n.admins {
		n.send(ctx, admin, what, opts...)
	}
}

// RegistrationCompleted tells every admin about a new or updated registration.
func (n *Notifier) RegistrationCompleted(ctx context.Context, reg registration.Registration, updated bool) {
	var b strings.Builder
	if updated {
		b.WriteString("✏️ Обновлена заявка")
	} else {
		b.WriteString("🆕 Новая заявка")
	}
	fmt.Fprintf(&b, " #%d\n", reg.ID)
	fmt.Fprintf(&b, "Имя: %s\n", reg.Name)
	fmt.Fprintf(&b, "Авто: %s\n", reg.Car)
	if reg.Plate != nil {
		fmt.Fprintf(&b, "Номер: %s\n", *reg.Plate)
	}
	if reg.Phone != nil {
		fmt.Fprintf(&b, "Телефон: %s\n", *reg.Phone)
	}
	fmt.Fprintf(&b, "Человек: %d", reg.People)

	logger.Info(ctx, "service.notify", "registration.notify",
		slog.String("status", "ok"),
		slog.Int64("reg_id", reg.ID),
		slog.Int("people", reg.People),
	)
	n.broadcast(ctx, b.String())
}

// ReceiptSubmitted forwards a payment receipt photo to admins together with
// confirm/reject buttons carrying the registration id.
func (n *Notifier) ReceiptSubmitted(ctx context.Context, reg registration.Registration, fileID string) {
	caption := fmt.Sprintf("💳 Чек по заявке #%d\n%s, %d чел.", reg.ID, reg.Name, reg.People)

	markup := &tele.ReplyMarkup{}
	confirm := markup.Data("✅ Оплачено", "pay_confirm", fmt.Sprintf("%d", reg.ID))
	reject := markup.Data("❌ Отклонить", "pay_reject", fmt.Sprintf("%d", reg.ID))
	markup.Inline(markup.Row(confirm, reject))

	photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}

	logger.Info(ctx, "service.notify", "receipt.notify",
		slog.String("status", "ok"),
		slog.Int64("reg_id", reg.ID),
	)
	n.broadcast(ctx, photo, markup)
}

// BroadcastText sends the same text to every listed user, best effort.
func (n *Notifier) BroadcastText(ctx context.Context, userIDs []int64, text string) {
	logger.Info(ctx, "service.notify", "broadcast",
		slog.String("status", "ok"),
		slog.Int("recipients", len(userIDs)),
	)
	for _, id := range userIDs {
		n.send(ctx, id, text)
	}
}

// Direct sends a plain text message to one user.
func (n *Notifier) Direct(ctx context.Context, userID int64, text string) {
	n.send(ctx, userID, text)
}
