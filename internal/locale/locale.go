// Package locale строковые таблицы uz/en/ru для пользовательских сообщений.
// Записи журнала языконезависимы; отображение (в т.ч. диапазонов дохода)
// происходит только на этой границе.
package locale

import "github.com/mcompany-dev/consult-booking-bot/internal/domain"

// Table таблица строк одного языка
type Table map[string]string

// DefaultLang язык по умолчанию при отсутствии выбора
const DefaultLang = "uz"

// Supported проверяет код языка
func Supported(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// T возвращает таблицу языка с откатом на uz
func T(lang string) Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[DefaultLang]
}

// Get возвращает строку по ключу; при отсутствии ключа отдаёт сам ключ,
// чтобы дыра в таблице была видна, а не молчала
func (t Table) Get(key string) string {
	if s, ok := t[key]; ok {
		return s
	}
	return key
}

// Months короткие названия месяцев для клавиатуры выбора
func Months(lang string) []string {
	switch lang {
	case "ru":
		return []string{"Янв", "Фев", "Мар", "Апр", "Май", "Июн", "Июл", "Авг", "Сен", "Окт", "Ноя", "Дек"}
	case "en":
		return []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	default:
		return []string{"Yan", "Fev", "Mar", "Apr", "May", "Iyun", "Iyul", "Avg", "Sen", "Okt", "Noy", "Dek"}
	}
}

// RevenueDisplay отображение диапазона дохода для пользователя
func RevenueDisplay(lang string, band domain.RevenueBand) string {
	t := T(lang)
	switch band {
	case domain.RevenueLow:
		return t.Get("aud_rev_low")
	case domain.RevenueMid:
		return t.Get("aud_rev_mid")
	case domain.RevenueHigh:
		return t.Get("aud_rev_high")
	}
	return string(band)
}

var tables = map[string]Table{
	"uz": {
		"greet_prompt": "Iltimos, tilni tanlang:",
		"lang_chosen":  "✅ Tanlangan til: O'zbekcha",
		"ask_contact":  "Telefon raqamingizni yuboring 👇",
		"btn_contact":  "📲 Raqamni yuborish",
		"contact_ok":   "✅ Rahmat! Endi xizmatlardan foydalanishingiz mumkin.",
		"menu_title":   "Quyidagi bo'limlardan birini tanlang:",
		"btn_audit":    "🔍 Bepul audit",

		"audit_title":    "Bepul biznes audit",
		"audit_choose":   "Qulay variantni tanlang:",
		"audit_web":      "🌐 Sayt orqali",
		"audit_book":     "📅 Konsultatsiya band qilish",
		"audit_web_desc": "Auditni saytimiz orqali ham o'tashingiz mumkin.",
		"more_btn":       "Batafsil ↗️",
		"back_btn":       "⬅️ Orqaga",

		"aud_ask_biz_name":      "Biznesingiz nomini yozing:",
		"aud_ask_biz_desc":      "Biznesingiz haqida qisqacha yozing:",
		"aud_ask_revenue":       "Oylik daromad diapazonini tanlang:",
		"aud_rev_low":           "$0 – $5k",
		"aud_rev_mid":           "$5k – $20k",
		"aud_rev_high":          "$20k+",
		"aud_pick_month":        "Oyni tanlang:",
		"aud_pick_day":          "Kunni tanlang:",
		"aud_pick_time":         "Vaqtni tanlang:",
		"aud_time_manual":       "✍️ Boshqa vaqt kiritish",
		"aud_enter_time_prompt": "Vaqtni yozing (masalan, <b>14:00</b>):",
		"aud_time_invalid":      "❌ Vaqt formati noto'g'ri. Masalan: <b>14:00</b>",
		"aud_time_out_of_hours": "❌ Ish vaqti 08:00 – 19:00 oralig'ida. Boshqa vaqt tanlang.",
		"aud_slot_taken":        "❌ Bu vaqt allaqachon band. Boshqa vaqt tanlang.",
		"aud_slot_busy_mark":    "🔒",

		"aud_review_title":   "Arizangizni tekshiring",
		"aud_review_confirm": "✅ Tasdiqlash",
		"aud_review_edit":    "✏️ Tahrirlash",
		"aud_review_cancel":  "❌ Bekor qilish",
		"aud_edit_which":     "Nimani o'zgartiramiz?",
		"aud_edit_biz_name":  "🏢 Biznes nomi",
		"aud_edit_biz_desc":  "📝 Tafsilot",
		"aud_edit_revenue":   "💰 Daromad",
		"aud_edit_datetime":  "📅 Sana va vaqt",
		"aud_canceled":       "❌ Ariza bekor qilindi. Istalgan vaqtda qayta boshlashingiz mumkin.",
		"aud_sent_to_admins": "✅ Arizangiz qabul qilindi! Tez orada siz bilan bog'lanamiz.",
		"aud_route_failed":   "⚠️ Arizangiz saqlandi, lekin hozircha operatorga yetkazib bo'lmadi. Biz bog'lanamiz.",

		"aud_admin_title":   "Yangi konsultatsiya arizasi",
		"aud_admin_approve": "✅ Tasdiqlash",
		"aud_admin_retime":  "🕒 Boshqa vaqt",
		"aud_admin_cancel":  "❌ Bekor qilish",

		"aud_user_approved":    "✅ Arizangiz tasdiqlandi! Belgilangan vaqtda kutamiz.",
		"aud_user_retime":      "🕒 Iltimos, boshqa vaqt yozib yuboring (masalan, <b>16:00</b>).",
		"aud_user_canceled":    "❌ Afsuski, arizangiz bekor qilindi.",
		"aud_retime_accepted":  "✅ Yangi vaqt qabul qilindi. Tasdiqlashni kuting.",
		"aud_retime_notfound":  "Ariza topilmadi",
		"aud_admin_slot_taken": "Bu slot endigina band bo'ldi",
	},
	"en": {
		"greet_prompt": "Please choose a language:",
		"lang_chosen":  "✅ Language set: English",
		"ask_contact":  "Share your phone number 👇",
		"btn_contact":  "📲 Share my number",
		"contact_ok":   "✅ Thanks! You can use the services now.",
		"menu_title":   "Choose a section:",
		"btn_audit":    "🔍 Free audit",

		"audit_title":    "Free business audit",
		"audit_choose":   "Pick the option that suits you:",
		"audit_web":      "🌐 On the website",
		"audit_book":     "📅 Book a consultation",
		"audit_web_desc": "You can also take the audit on our website.",
		"more_btn":       "Learn more ↗️",
		"back_btn":       "⬅️ Back",

		"aud_ask_biz_name":      "What is your business called?",
		"aud_ask_biz_desc":      "Describe your business in a few words:",
		"aud_ask_revenue":       "Pick your monthly revenue band:",
		"aud_rev_low":           "$0 – $5k",
		"aud_rev_mid":           "$5k – $20k",
		"aud_rev_high":          "$20k+",
		"aud_pick_month":        "Pick a month:",
		"aud_pick_day":          "Pick a day:",
		"aud_pick_time":         "Pick a time:",
		"aud_time_manual":       "✍️ Enter another time",
		"aud_enter_time_prompt": "Type a time (for example, <b>14:00</b>):",
		"aud_time_invalid":      "❌ That doesn't look like a time. Example: <b>14:00</b>",
		"aud_time_out_of_hours": "❌ Working hours are 08:00 – 19:00. Pick another time.",
		"aud_slot_taken":        "❌ That time is already taken. Pick another one.",
		"aud_slot_busy_mark":    "🔒",

		"aud_review_title":   "Review your request",
		"aud_review_confirm": "✅ Confirm",
		"aud_review_edit":    "✏️ Edit",
		"aud_review_cancel":  "❌ Cancel",
		"aud_edit_which":     "What should we change?",
		"aud_edit_biz_name":  "🏢 Business name",
		"aud_edit_biz_desc":  "📝 Description",
		"aud_edit_revenue":   "💰 Revenue",
		"aud_edit_datetime":  "📅 Date & time",
		"aud_canceled":       "❌ Request canceled. You can start over anytime.",
		"aud_sent_to_admins": "✅ Your request is in! We'll get back to you shortly.",
		"aud_route_failed":   "⚠️ Your request was saved but couldn't be routed to an operator yet. We'll be in touch.",

		"aud_admin_title":   "New consultation request",
		"aud_admin_approve": "✅ Approve",
		"aud_admin_retime":  "🕒 New time",
		"aud_admin_cancel":  "❌ Cancel",

		"aud_user_approved":    "✅ Your request is approved! See you at the scheduled time.",
		"aud_user_retime":      "🕒 Please send another time (for example, <b>16:00</b>).",
		"aud_user_canceled":    "❌ Unfortunately, your request was canceled.",
		"aud_retime_accepted":  "✅ New time accepted. Waiting for approval.",
		"aud_retime_notfound":  "Booking not found",
		"aud_admin_slot_taken": "That slot was just taken",
	},
	"ru": {
		"greet_prompt": "Пожалуйста, выберите язык:",
		"lang_chosen":  "✅ Выбран язык: Русский",
		"ask_contact":  "Отправьте свой номер телефона 👇",
		"btn_contact":  "📲 Отправить номер",
		"contact_ok":   "✅ Спасибо! Теперь вам доступны все разделы.",
		"menu_title":   "Выберите раздел:",
		"btn_audit":    "🔍 Бесплатный аудит",

		"audit_title":    "Бесплатный аудит бизнеса",
		"audit_choose":   "Выберите удобный вариант:",
		"audit_web":      "🌐 Через сайт",
		"audit_book":     "📅 Записаться на консультацию",
		"audit_web_desc": "Аудит можно пройти и на нашем сайте.",
		"more_btn":       "Подробнее ↗️",
		"back_btn":       "⬅️ Назад",

		"aud_ask_biz_name":      "Напишите название вашего бизнеса:",
		"aud_ask_biz_desc":      "Коротко опишите ваш бизнес:",
		"aud_ask_revenue":       "Выберите диапазон месячного дохода:",
		"aud_rev_low":           "$0 – $5k",
		"aud_rev_mid":           "$5k – $20k",
		"aud_rev_high":          "$20k+",
		"aud_pick_month":        "Выберите месяц:",
		"aud_pick_day":          "Выберите день:",
		"aud_pick_time":         "Выберите время:",
		"aud_time_manual":       "✍️ Ввести другое время",
		"aud_enter_time_prompt": "Напишите время (например, <b>14:00</b>):",
		"aud_time_invalid":      "❌ Неверный формат времени. Например: <b>14:00</b>",
		"aud_time_out_of_hours": "❌ Рабочие часы 08:00 – 19:00. Выберите другое время.",
		"aud_slot_taken":        "❌ Это время уже занято. Выберите другое.",
		"aud_slot_busy_mark":    "🔒",

		"aud_review_title":   "Проверьте вашу заявку",
		"aud_review_confirm": "✅ Подтвердить",
		"aud_review_edit":    "✏️ Изменить",
		"aud_review_cancel":  "❌ Отменить",
		"aud_edit_which":     "Что изменить?",
		"aud_edit_biz_name":  "🏢 Название бизнеса",
		"aud_edit_biz_desc":  "📝 Описание",
		"aud_edit_revenue":   "💰 Доход",
		"aud_edit_datetime":  "📅 Дата и время",
		"aud_canceled":       "❌ Заявка отменена. Вы можете начать заново в любой момент.",
		"aud_sent_to_admins": "✅ Заявка принята! Мы скоро свяжемся с вами.",
		"aud_route_failed":   "⚠️ Заявка сохранена, но пока не доставлена оператору. Мы свяжемся с вами.",

		"aud_admin_title":   "Новая заявка на консультацию",
		"aud_admin_approve": "✅ Подтвердить",
		"aud_admin_retime":  "🕒 Другое время",
		"aud_admin_cancel":  "❌ Отменить",

		"aud_user_approved":    "✅ Ваша заявка подтверждена! Ждём вас в назначенное время.",
		"aud_user_retime":      "🕒 Пожалуйста, напишите другое время (например, <b>16:00</b>).",
		"aud_user_canceled":    "❌ К сожалению, ваша заявка отменена.",
		"aud_retime_accepted":  "✅ Новое время принято. Ожидайте подтверждения.",
		"aud_retime_notfound":  "Заявка не найдена",
		"aud_admin_slot_taken": "Этот слот только что заняли",
	},
}
