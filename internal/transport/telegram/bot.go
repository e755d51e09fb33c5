package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/users"
	"github.com/mcompany-dev/consult-booking-bot/internal/locale"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/approval"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/notify"
	"github.com/mcompany-dev/consult-booking-bot/pkg/metrics"
)

// Bot диспетчер апдейтов Telegram: онбординг, меню и маршрутизация
// callback-ов в мастер бронирования и координатор согласования.
type Bot struct {
	api    *tgbotapi.BotAPI
	sender *Sender

	adminGroupID int64
	defaultLang  string
	websiteURL   string
	pollTimeout  int

	wizard    Wizard
	approvals Approvals
	profiles  ProfileStore
	metrics   *metrics.Metrics
	logger    Logger
}

// NewBot создает диспетчер
func NewBot(
	api *tgbotapi.BotAPI,
	sender *Sender,
	adminGroupID int64,
	defaultLang string,
	websiteURL string,
	pollTimeout int,
	w Wizard,
	a Approvals,
	profiles ProfileStore,
	m *metrics.Metrics,
	logger Logger,
) *Bot {
	return &Bot{
		api:          api,
		sender:       sender,
		adminGroupID: adminGroupID,
		defaultLang:  defaultLang,
		websiteURL:   websiteURL,
		pollTimeout:  pollTimeout,
		wizard:       w,
		approvals:    a,
		profiles:     profiles,
		metrics:      m,
		logger:       logger,
	}
}

// Run запускает long polling и блокируется до отмены контекста
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram: polling started as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram: polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.onMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.onCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Групповые чаты (включая канал оператора) текстом не управляются.
	if !msg.Chat.IsPrivate() {
		return
	}

	userID := msg.From.ID
	b.touchProfile(ctx, msg)

	if msg.Contact != nil {
		b.onContact(ctx, msg)
		return
	}

	if msg.IsCommand() && msg.Command() == "start" {
		b.onStart(ctx, userID)
		return
	}

	// Свободный текст сначала предлагается мастеру, затем retime-потоку.
	if b.wizard.HandleText(ctx, userID, msg.Text) {
		return
	}
	if b.approvals.HandleRetimeReply(ctx, userID, msg.Text) {
		return
	}

	b.sendMenu(ctx, userID)
}

// touchProfile дополняет профиль данными из каждого апдейта: имя и
// username Telegram меняются, и карточка оператора должна видеть свежие
func (b *Bot) touchProfile(ctx context.Context, msg *tgbotapi.Message) {
	u := &users.User{
		UserID:   msg.From.ID,
		Username: msg.From.UserName,
		Name:     fullName(msg.From),
	}
	if err := b.profiles.Upsert(ctx, u); err != nil {
		b.logger.Warn("telegram: profile upsert failed user=%d: %v", msg.From.ID, err)
	}
}

func (b *Bot) onStart(ctx context.Context, userID int64) {
	t := locale.T(b.defaultLang)
	b.sender.ToRequester(userID, notify.Message{
		Text: t.Get("greet_prompt"),
		Keyboard: [][]notify.Button{
			notify.Row(
				notify.Button{Label: "🇺🇿 O'zbekcha", Data: "lang:uz"},
				notify.Button{Label: "🇬🇧 English", Data: "lang:en"},
				notify.Button{Label: "🇷🇺 Русский", Data: "lang:ru"},
			),
		},
	})
}

func (b *Bot) onContact(ctx context.Context, msg *tgbotapi.Message) {
	// Принимается только собственный контакт пользователя.
	if msg.Contact.UserID != msg.From.ID {
		return
	}

	u := &users.User{
		UserID: msg.From.ID,
		Phone:  msg.Contact.PhoneNumber,
	}
	if err := b.profiles.Upsert(ctx, u); err != nil {
		b.logger.Warn("telegram: contact upsert failed user=%d: %v", msg.From.ID, err)
	}

	t := locale.T(b.userLang(ctx, msg.From.ID))
	b.sender.ToRequester(msg.From.ID, notify.Message{Text: t.Get("contact_ok")})
	b.sendMenu(ctx, msg.From.ID)
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	userID := cb.From.ID

	// Кнопки оператора живут в своём чате и обрабатываются первыми.
	if res, consumed := b.approvals.OnOperatorAction(ctx, data); consumed {
		b.finishOperatorAction(cb, res)
		return
	}

	if b.wizard.HandleCallback(ctx, userID, data) {
		b.answer(cb.ID, "")
		return
	}

	switch data {
	case "lang:uz", "lang:en", "lang:ru":
		b.onLangChosen(ctx, cb)
	case "menu:audit":
		b.sendAuditMenu(ctx, userID)
		b.answer(cb.ID, "")
	case "audit:web":
		b.sendAuditWebsite(ctx, userID)
		b.answer(cb.ID, "")
	case "audit:book":
		b.wizard.Start(ctx, userID, b.userLang(ctx, userID))
		b.answer(cb.ID, "")
	case "back:menu":
		b.sendMenu(ctx, userID)
		b.answer(cb.ID, "")
	default:
		b.logger.Debug("telegram: unhandled callback %q from user=%d", data, userID)
		b.answer(cb.ID, "")
	}
}

// finishOperatorAction закрывает callback оператора: успешное действие
// снимает контролы с карточки, конфликт слота оставляет их на месте
func (b *Bot) finishOperatorAction(cb *tgbotapi.CallbackQuery, res approval.Result) {
	t := locale.T("ru")

	switch res {
	case approval.ResultOK:
		b.retractControls(cb)
		b.answer(cb.ID, "")
	case approval.ResultNotFound:
		b.retractControls(cb)
		b.alert(cb.ID, t.Get("aud_retime_notfound"))
	case approval.ResultSlotTaken:
		b.alert(cb.ID, t.Get("aud_admin_slot_taken"))
	}
}

func (b *Bot) retractControls(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(
		cb.Message.Chat.ID,
		cb.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	if _, err := b.api.Request(edit); err != nil {
		b.logger.Warn("telegram: retract controls failed: %v", err)
	}
}

func (b *Bot) onLangChosen(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	lang := cb.Data[len("lang:"):]
	if !locale.Supported(lang) {
		lang = b.defaultLang
	}
	if err := b.profiles.SetLang(ctx, cb.From.ID, lang); err != nil {
		b.logger.Warn("telegram: set lang failed user=%d: %v", cb.From.ID, err)
	}

	t := locale.T(lang)
	b.sender.ToRequester(cb.From.ID, notify.Message{Text: t.Get("lang_chosen")})
	b.sender.ToRequester(cb.From.ID, notify.Message{
		Text:           t.Get("ask_contact"),
		RequestContact: true,
		ContactButton:  t.Get("btn_contact"),
	})
	b.answer(cb.ID, "")
}

func (b *Bot) sendMenu(ctx context.Context, userID int64) {
	t := locale.T(b.userLang(ctx, userID))
	b.sender.ToRequester(userID, notify.Message{
		Text: t.Get("menu_title"),
		Keyboard: [][]notify.Button{
			notify.Row(notify.Button{Label: t.Get("btn_audit"), Data: "menu:audit"}),
		},
	})
}

func (b *Bot) sendAuditMenu(ctx context.Context, userID int64) {
	t := locale.T(b.userLang(ctx, userID))
	b.sender.ToRequester(userID, notify.Message{
		Text: fmt.Sprintf("<b>%s</b>\n\n%s", t.Get("audit_title"), t.Get("audit_choose")),
		Keyboard: [][]notify.Button{
			notify.Row(notify.Button{Label: t.Get("audit_web"), Data: "audit:web"}),
			notify.Row(notify.Button{Label: t.Get("audit_book"), Data: "audit:book"}),
			notify.Row(notify.Button{Label: t.Get("back_btn"), Data: "back:menu"}),
		},
	})
}

func (b *Bot) sendAuditWebsite(ctx context.Context, userID int64) {
	t := locale.T(b.userLang(ctx, userID))
	kb := [][]notify.Button{}
	if b.websiteURL != "" {
		kb = append(kb, notify.Row(notify.Button{Label: t.Get("more_btn"), URL: b.websiteURL}))
	}
	kb = append(kb, notify.Row(notify.Button{Label: t.Get("back_btn"), Data: "menu:audit"}))
	b.sender.ToRequester(userID, notify.Message{
		Text:     t.Get("audit_web_desc"),
		Keyboard: kb,
	})
}

func (b *Bot) userLang(ctx context.Context, userID int64) string {
	u, err := b.profiles.GetByUserID(ctx, userID)
	if err != nil || u.Lang == "" {
		return b.defaultLang
	}
	return u.Lang
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Debug("telegram: answer callback failed: %v", err)
	}
}

func (b *Bot) alert(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		b.logger.Debug("telegram: alert callback failed: %v", err)
	}
}

func fullName(u *tgbotapi.User) string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
