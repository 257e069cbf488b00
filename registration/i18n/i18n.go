// Package i18n renders prompt descriptors and bot texts into the configured
// locales. Templates are plain fmt strings; anything fancier was not needed.
package i18n

import (
	"fmt"
	"strings"

	"jeepfest-bot/core/telegram/format"
	"jeepfest-bot/registration"
	"jeepfest-bot/registration/flow"
)

// DefaultLocale is used when a template is missing for the user's locale.
const DefaultLocale = "ru"

// Event carries the deployment-specific values substituted into templates.
type Event struct {
	Title        string
	Dates        string
	LocationName string
	LocationURL  string
	FeeAmount    string
	CardNumber   string
	Organizer    string
}

// Catalog resolves (prompt, locale) pairs into ready-to-send text.
type Catalog struct {
	ev Event
}

func New(ev Event) *Catalog {
	return &Catalog{ev: ev}
}

var prompts = map[flow.PromptID]map[string]string{
	flow.PromptChooseLang: {
		"ru": "Выберите язык / Tilni tanlang:",
		"uz": "Tilni tanlang / Выберите язык:",
	},
	flow.PromptAskName: {
		"ru": "Как вас зовут? Укажите имя и фамилию.",
		"uz": "Ismingiz nima? Ism va familiyangizni yozing.",
	},
	flow.PromptBadName: {
		"ru": "Имя слишком короткое. Напишите имя и фамилию текстом.",
		"uz": "Ism juda qisqa. Ism va familiyani matn bilan yozing.",
	},
	flow.PromptAskCar: {
		"ru": "Какой у вас автомобиль? Марка и модель.",
		"uz": "Avtomobilingiz qanday? Marka va model.",
	},
	flow.PromptBadCar: {
		"ru": "Не понял модель. Напишите марку и модель автомобиля.",
		"uz": "Model tushunarsiz. Avtomobil marka va modelini yozing.",
	},
	flow.PromptAskPlate: {
		"ru": "Укажите госномер автомобиля.",
		"uz": "Avtomobil davlat raqamini yozing.",
	},
	flow.PromptBadPlate: {
		"ru": "Номер слишком короткий. Укажите полный госномер.",
		"uz": "Raqam juda qisqa. To‘liq davlat raqamini yozing.",
	},
	flow.PromptAskParticipation: {
		"ru": "Будете участвовать в соревнованиях?",
		"uz": "Musobaqada qatnashasizmi?",
	},
	flow.PromptAskDiscipline: {
		"ru": "Выберите дисциплину: Триал или Спринт.",
		"uz": "Yo‘nalishni tanlang: Trial yoki Sprint.",
	},
	flow.PromptBadChoice: {
		"ru": "Выберите один из вариантов на клавиатуре.",
		"uz": "Klaviaturadagi variantlardan birini tanlang.",
	},
	flow.PromptAskPhone: {
		"ru": "Ваш номер телефона? Например: +998 90 123-45-67.",
		"uz": "Telefon raqamingiz? Masalan: +998 90 123-45-67.",
	},
	flow.PromptBadPhone: {
		"ru": "Это не похоже на номер телефона. Попробуйте ещё раз.",
		"uz": "Bu telefon raqamiga o‘xshamaydi. Qayta urinib ko‘ring.",
	},
	flow.PromptAskPeople: {
		"ru": "Сколько человек приедет вместе с вами (включая вас)?",
		"uz": "Siz bilan birga necha kishi keladi (o‘zingiz bilan)?",
	},
	flow.PromptBadPeople: {
		"ru": "Нужно число от 1 до 50.",
		"uz": "1 dan 50 gacha son kerak.",
	},
	flow.PromptAskPhoto: {
		"ru": "Пришлите фото автомобиля. Можно пропустить.",
		"uz": "Avtomobil suratini yuboring. O‘tkazib yuborsa ham bo‘ladi.",
	},
	flow.PromptBadPhoto: {
		"ru": "Жду фото. Пришлите картинку или нажмите «Пропустить».",
		"uz": "Surat kutyapman. Rasm yuboring yoki «O‘tkazib yuborish» tugmasini bosing.",
	},
	flow.PromptKeepCurrent: {
		"ru": "Сейчас указано: %v. Нажмите «Пропустить», чтобы оставить.",
		"uz": "Hozirgi qiymat: %v. Qoldirish uchun «O‘tkazib yuborish» tugmasini bosing.",
	},
	flow.PromptConflict: {
		"ru": "Поле «%s» уже занято другим участником. Нажмите «Изменить» и укажите другое значение.",
		"uz": "«%s» maydoni boshqa ishtirokchi tomonidan band. «Tahrirlash» tugmasini bosib boshqa qiymat kiriting.",
	},
	flow.PromptDone: {
		"ru": "Готово! Вы зарегистрированы, номер заявки %d.",
		"uz": "Tayyor! Siz ro‘yxatdan o‘tdingiz, ariza raqami %d.",
	},
	flow.PromptUpdated: {
		"ru": "Данные обновлены, номер заявки %d.",
		"uz": "Ma’lumotlar yangilandi, ariza raqami %d.",
	},
	flow.PromptPaymentInfo: {
		"ru": "Взнос %s. Оплатите переводом на карту %s и пришлите фото чека в этот чат.",
		"uz": "Badal %s. %s kartasiga o‘tkazma qiling va chek suratini shu chatga yuboring.",
	},
	flow.PromptCancelled: {
		"ru": "Регистрация отменена. Начать заново: /start",
		"uz": "Ro‘yxatdan o‘tish bekor qilindi. Qaytadan boshlash: /start",
	},
}

// Bot-level texts outside the conversation engine.
const (
	MsgWelcome          = "welcome"
	MsgInfo             = "info"
	MsgLocation         = "location"
	MsgNotRegistered    = "not_registered"
	MsgRetryLater       = "retry_later"
	MsgBadInline        = "bad_inline"
	MsgReceiptAccepted  = "receipt_accepted"
	MsgReceiptNoReg     = "receipt_no_reg"
	MsgPaymentConfirmed = "payment_confirmed"
	MsgPaymentRejected  = "payment_rejected"
)

var texts = map[string]map[string]string{
	MsgWelcome: {
		"ru": "Привет! Это бот регистрации на %s (%s).\nЗаполните анкету, это займёт пару минут.",
		"uz": "Salom! Bu %s (%s) ro‘yxatdan o‘tish boti.\nAnketani to‘ldiring, bu bir necha daqiqa oladi.",
	},
	MsgInfo: {
		"ru": "%s\nДаты: %s\nВзнос: %s\nОрганизатор: %s",
		"uz": "%s\nSanalar: %s\nBadal: %s\nTashkilotchi: %s",
	},
	MsgLocation: {
		"ru": "Место проведения: %s\n%s",
		"uz": "O‘tkazish joyi: %s\n%s",
	},
	MsgNotRegistered: {
		"ru": "Вы ещё не зарегистрированы. Начните с /start.",
		"uz": "Siz hali ro‘yxatdan o‘tmagansiz. /start dan boshlang.",
	},
	MsgRetryLater: {
		"ru": "Что-то пошло не так. Попробуйте ещё раз чуть позже.",
		"uz": "Nimadir noto‘g‘ri ketdi. Birozdan so‘ng qayta urinib ko‘ring.",
	},
	MsgBadInline: {
		"ru": "Не удалось разобрать данные. Формат: Имя, Машина, Телефон, Кол-во человек.",
		"uz": "Ma’lumotlarni o‘qib bo‘lmadi. Format: Ism, Mashina, Telefon, Odamlar soni.",
	},
	MsgReceiptAccepted: {
		"ru": "Чек получен, спасибо! Оплата будет проверена организаторами.",
		"uz": "Chek qabul qilindi, rahmat! To‘lov tashkilotchilar tomonidan tekshiriladi.",
	},
	MsgReceiptNoReg: {
		"ru": "Сначала пройдите регистрацию: /start",
		"uz": "Avval ro‘yxatdan o‘ting: /start",
	},
	MsgPaymentConfirmed: {
		"ru": "Оплата подтверждена. Ждём вас на фестивале!",
		"uz": "To‘lov tasdiqlandi. Sizni festivalda kutamiz!",
	},
	MsgPaymentRejected: {
		"ru": "Оплату не удалось подтвердить. Свяжитесь с организаторами или пришлите чек ещё раз.",
		"uz": "To‘lovni tasdiqlab bo‘lmadi. Tashkilotchilar bilan bog‘laning yoki chekni qayta yuboring.",
	},
}

var fieldLabels = map[registration.Field]map[string]string{
	registration.FieldName:          {"ru": "Имя", "uz": "Ism"},
	registration.FieldCar:           {"ru": "Автомобиль", "uz": "Avtomobil"},
	registration.FieldPlate:         {"ru": "Госномер", "uz": "Davlat raqami"},
	registration.FieldParticipation: {"ru": "Участие в гонке", "uz": "Poygada qatnashish"},
	registration.FieldDiscipline:    {"ru": "Дисциплина", "uz": "Yo‘nalish"},
	registration.FieldPhone:         {"ru": "Телефон", "uz": "Telefon"},
	registration.FieldPeople:        {"ru": "Человек", "uz": "Odamlar"},
	registration.FieldPhoto:         {"ru": "Фото", "uz": "Surat"},
}

func pick(m map[string]string, locale string) string {
	if s, ok := m[locale]; ok {
		return s
	}
	return m[DefaultLocale]
}

// FieldLabel returns the localized display name of a field.
func (c *Catalog) FieldLabel(locale string, f registration.Field) string {
	if m, ok := fieldLabels[f]; ok {
		return pick(m, locale)
	}
	return string(f)
}

// Prompt renders one engine prompt into text for the given locale.
func (c *Catalog) Prompt(locale string, p flow.Prompt) string {
	m, ok := prompts[p.ID]
	if !ok {
		return string(p.ID)
	}
	tmpl := pick(m, locale)
	switch p.ID {
	case flow.PromptPaymentInfo:
		return fmt.Sprintf(tmpl, c.ev.FeeAmount, c.ev.CardNumber)
	case flow.PromptConflict:
		args := append([]any(nil), p.Args...)
		if len(args) > 0 {
			if f, ok := args[0].(string); ok {
				args[0] = c.FieldLabel(locale, registration.Field(f))
			}
		}
		return fmt.Sprintf(tmpl, args...)
	}
	if len(p.Args) > 0 {
		return fmt.Sprintf(tmpl, p.Args...)
	}
	return tmpl
}

// Text renders one bot-level message.
func (c *Catalog) Text(locale, id string, args ...any) string {
	m, ok := texts[id]
	if !ok {
		return id
	}
	tmpl := pick(m, locale)
	switch id {
	case MsgWelcome:
		return fmt.Sprintf(tmpl, c.ev.Title, c.ev.Dates)
	case MsgInfo:
		return fmt.Sprintf(tmpl, c.ev.Title, c.ev.Dates, c.ev.FeeAmount, c.ev.Organizer)
	case MsgLocation:
		return fmt.Sprintf(tmpl, c.ev.LocationName, c.ev.LocationURL)
	}
	if len(args) > 0 {
		return fmt.Sprintf(tmpl, args...)
	}
	return tmpl
}

func yesNo(locale string, v bool) string {
	switch {
	case v && locale == "uz":
		return "Ha"
	case v:
		return "Да"
	case locale == "uz":
		return "Yo‘q"
	}
	return "Нет"
}

// Summary renders the confirmation screen for an accumulated draft, listing
// only the fields the deployment collects. The output is sent in HTML parse
// mode, so user-supplied values are escaped.
func (c *Catalog) Summary(locale string, d *registration.Draft, fields []registration.Field) string {
	var b strings.Builder
	if locale == "uz" {
		b.WriteString("<b>Tekshirib chiqing:</b>\n")
	} else {
		b.WriteString("<b>Проверьте данные:</b>\n")
	}
	for _, f := range fields {
		label := c.FieldLabel(locale, f)
		switch f {
		case registration.FieldParticipation:
			if d.Participation == nil {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", label, yesNo(locale, *d.Participation))
		case registration.FieldDiscipline:
			if d.Discipline == "" {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", label, d.Discipline)
		case registration.FieldPeople:
			fmt.Fprintf(&b, "%s: %d\n", label, d.People)
		case registration.FieldPhoto:
			// File ids are meaningless to users, skip.
		default:
			if v := d.Current(f); v != "" {
				fmt.Fprintf(&b, "%s: %s\n", label, format.EscapeHTML(v))
			}
		}
	}
	return b.String()
}
