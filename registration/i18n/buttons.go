package i18n

// Button identifiers for reply keyboards. Labels intentionally contain the
// same vocabulary the intent classifier matches on, so a tap and a typed
// answer travel the same path.
const (
	BtnRegister = "btn_register"
	BtnMyData   = "btn_mydata"
	BtnInfo     = "btn_info"
	BtnLocation = "btn_location"
	BtnLangRU   = "btn_lang_ru"
	BtnLangUZ   = "btn_lang_uz"
	BtnCancel   = "btn_cancel"
	BtnSkip     = "btn_skip"
	BtnConfirm  = "btn_confirm"
	BtnEdit     = "btn_edit"
	BtnBack     = "btn_back"
	BtnYes      = "btn_yes"
	BtnNo       = "btn_no"
	BtnTrial    = "btn_trial"
	BtnSprint   = "btn_sprint"
)

var buttons = map[string]map[string]string{
	BtnRegister: {"ru": "📋 Регистрация", "uz": "📋 Ro‘yxatdan o‘tish"},
	BtnMyData:   {"ru": "👤 Мои данные", "uz": "👤 Mening ma’lumotlarim"},
	BtnInfo:     {"ru": "ℹ️ Инфо", "uz": "ℹ️ Ma’lumot"},
	BtnLocation: {"ru": "📍 Локация", "uz": "📍 Manzil"},
	BtnLangRU:   {"ru": "🇷🇺 Русский", "uz": "🇷🇺 Русский"},
	BtnLangUZ:   {"ru": "🇺🇿 O‘zbekcha", "uz": "🇺🇿 O‘zbekcha"},
	BtnCancel:   {"ru": "❌ Отмена", "uz": "❌ Bekor qilish"},
	BtnSkip:     {"ru": "➡️ Пропустить", "uz": "➡️ O‘tkazib yuborish"},
	BtnConfirm:  {"ru": "✅ Подтвердить", "uz": "✅ Tasdiqlash"},
	BtnEdit:     {"ru": "✏️ Изменить", "uz": "✏️ Tahrirlash"},
	BtnBack:     {"ru": "⬅ Назад", "uz": "⬅ Orqaga"},
	BtnYes:      {"ru": "Да", "uz": "Ha"},
	BtnNo:       {"ru": "Нет", "uz": "Yo‘q"},
	BtnTrial:    {"ru": "Триал", "uz": "Trial"},
	BtnSprint:   {"ru": "Спринт", "uz": "Sprint"},
}

// Button returns the localized label for a keyboard button.
func (c *Catalog) Button(locale, id string) string {
	if m, ok := buttons[id]; ok {
		return pick(m, locale)
	}
	return id
}
