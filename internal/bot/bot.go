// Package bot is the Telegram front-end for the booking API. It guides a
// client through picking a specialist, an offering, a date and a free slot,
// and books the appointment through the bookingapi client.
package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/om1ji/appointment-booking-backend/internal/bookingapi"
)

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// Bot polls Telegram updates and drives the booking conversation.
type Bot struct {
	api     *bookingapi.Client
	tg      telegramClient
	state   *stateStore
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

func New(token string, apiClient *bookingapi.Client, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newBot(&realTelegramClient{api: api}, apiClient, logger)
}

// NewWithTelegramClient allows injecting a mocked Telegram client for tests.
func NewWithTelegramClient(tg telegramClient, apiClient *bookingapi.Client, logger *zerolog.Logger) (*Bot, error) {
	return newBot(tg, apiClient, logger)
}

func newBot(tg telegramClient, apiClient *bookingapi.Client, logger *zerolog.Logger) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	return &Bot{
		api:   apiClient,
		tg:    tg,
		state: newStateStore(),
		// Telegram caps bots around 30 messages per second.
		limiter: rate.NewLimiter(rate.Limit(25), 5),
		logger:  logger,
	}, nil
}

var mainMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("🗓 Записаться"),
		tgbotapi.NewKeyboardButton("📌 Мои записи"),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("ℹ️ Помощь"),
	),
)

// Start begins polling updates and handles commands until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.logger.Info().Str("username", b.tg.SelfUser().UserName).Msg("bot authorized")

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			b.handleUpdate(l.WithContext(ctx), &update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	l := zerolog.Ctx(ctx)
	if update.CallbackQuery != nil {
		l.Debug().
			Int64("user_id", update.CallbackQuery.From.ID).
			Str("data", update.CallbackQuery.Data).
			Msg("handling callback query")
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		l.Debug().
			Int64("user_id", update.Message.From.ID).
			Str("text", update.Message.Text).
			Msg("handling message")
		b.handleMessage(ctx, update.Message)
		return
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)

	// Commands and menu buttons interrupt any active flow.
	switch {
	case strings.HasPrefix(text, "/start"):
		b.state.reset(msg.From.ID)
		b.sendMainMenu(msg.Chat.ID)
		return
	case text == "🗓 Записаться" || strings.HasPrefix(text, "/book"):
		b.startBookingFlow(ctx, msg)
		return
	case text == "📌 Мои записи" || strings.HasPrefix(text, "/my_appointments"):
		b.handleMyAppointments(ctx, msg)
		return
	case text == "ℹ️ Помощь" || strings.HasPrefix(text, "/help"):
		b.reply(msg.Chat.ID, "Доступные команды: /book — записаться, /my_appointments — мои записи, /cancel — прервать запись")
		return
	case strings.HasPrefix(text, "/cancel"):
		b.state.reset(msg.From.ID)
		b.reply(msg.Chat.ID, "Операция отменена.")
		b.sendMainMenu(msg.Chat.ID)
		return
	}

	st := b.state.get(msg.From.ID)
	switch st.Step {
	case stepClientName:
		st.Draft.ClientName = text
		st.Step = stepClientPhone
		b.reply(msg.Chat.ID, "Введите ваш телефон:")
	case stepClientPhone:
		phone, ok := normalizePhone(text)
		if !ok {
			b.reply(msg.Chat.ID, "Некорректный телефон. Пример: +7 999 123-45-67")
			return
		}
		st.Draft.ClientPhone = phone
		st.Step = stepConfirm
		b.sendConfirm(msg.Chat.ID, st)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.Message == nil {
		return
	}
	data := cq.Data
	_ = b.answerCallback(cq.ID)

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID
	st := b.state.get(userID)

	switch {
	case strings.HasPrefix(data, "spec:"):
		b.handleSpecialistCallback(ctx, chatID, st, strings.TrimPrefix(data, "spec:"))
	case strings.HasPrefix(data, "offer:"):
		b.handleOfferingCallback(ctx, chatID, st, strings.TrimPrefix(data, "offer:"))
	case strings.HasPrefix(data, "date:"):
		b.handleDateCallback(ctx, chatID, st, strings.TrimPrefix(data, "date:"))
	case strings.HasPrefix(data, "slot:"):
		b.handleSlotCallback(ctx, chatID, userID, st, strings.TrimPrefix(data, "slot:"))
	case strings.HasPrefix(data, "back:"):
		b.handleBack(ctx, chatID, st, strings.TrimPrefix(data, "back:"))
	case strings.HasPrefix(data, "cancelappt:"):
		b.handleCancelAppointment(ctx, chatID, strings.TrimPrefix(data, "cancelappt:"))
	case data == "confirm":
		b.handleConfirmCallback(ctx, chatID, userID, st)
	case data == "cancel":
		b.state.reset(userID)
		b.reply(chatID, "Запись отменена.")
		b.sendMainMenu(chatID)
	}
}

func (b *Bot) startBookingFlow(ctx context.Context, msg *tgbotapi.Message) {
	specialists, err := b.api.SearchSpecialists(ctx, "", "", "")
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("search specialists failed")
		b.reply(msg.Chat.ID, "Сервис временно недоступен, попробуйте позже.")
		return
	}
	if len(specialists) == 0 {
		b.reply(msg.Chat.ID, "Пока нет доступных специалистов.")
		return
	}

	st := b.state.get(msg.From.ID)
	st.Step = stepSpecialist
	st.Draft = BookingDraft{}

	out := tgbotapi.NewMessage(msg.Chat.ID, "Выберите специалиста:")
	out.ReplyMarkup = specialistsKeyboard(specialists)
	b.send(out)
}

func (b *Bot) handleSpecialistCallback(ctx context.Context, chatID int64, st *userState, specialistID string) {
	specialists, err := b.api.SearchSpecialists(ctx, "", "", "")
	if err != nil {
		b.reply(chatID, "Сервис временно недоступен, попробуйте позже.")
		return
	}
	for _, s := range specialists {
		if s.ID == specialistID {
			st.Draft.SpecialistID = s.ID
			st.Draft.SpecialistName = s.Name
			break
		}
	}
	if st.Draft.SpecialistID == "" {
		b.reply(chatID, "Специалист не найден, начните заново: /book")
		return
	}

	offerings, err := b.api.ListOfferings(ctx, specialistID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list offerings failed")
		b.reply(chatID, "Сервис временно недоступен, попробуйте позже.")
		return
	}
	if len(offerings) == 0 {
		b.reply(chatID, "У специалиста пока нет услуг.")
		return
	}

	st.Step = stepOffering
	out := tgbotapi.NewMessage(chatID, "Выберите услугу:")
	out.ReplyMarkup = offeringsKeyboard(offerings)
	b.send(out)
}

func (b *Bot) handleOfferingCallback(ctx context.Context, chatID int64, st *userState, offeringID string) {
	offerings, err := b.api.ListOfferings(ctx, st.Draft.SpecialistID)
	if err != nil {
		b.reply(chatID, "Сервис временно недоступен, попробуйте позже.")
		return
	}
	for _, o := range offerings {
		if o.ID == offeringID {
			st.Draft.OfferingID = o.ID
			st.Draft.OfferingName = o.Name
			st.Draft.Duration = o.DurationMinutes
			break
		}
	}
	if st.Draft.OfferingID == "" {
		b.reply(chatID, "Услуга не найдена, начните заново: /book")
		return
	}

	st.Step = stepDate
	out := tgbotapi.NewMessage(chatID, "Выберите дату:")
	out.ReplyMarkup = datesKeyboard(time.Now())
	b.send(out)
}

func (b *Bot) handleDateCallback(ctx context.Context, chatID int64, st *userState, date string) {
	st.Draft.Date = date

	slots, err := b.api.AvailableSlots(ctx, st.Draft.SpecialistID, date)
	if err != nil {
		if apiErr, ok := err.(*bookingapi.APIError); ok && apiErr.StatusCode == 400 {
			b.reply(chatID, "Специалист не работает в этот день, выберите другую дату.")
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("available slots failed")
		b.reply(chatID, "Сервис временно недоступен, попробуйте позже.")
		return
	}
	if len(slots) == 0 {
		b.reply(chatID, "На эту дату свободных окон нет, выберите другую.")
		return
	}

	st.Step = stepSlot
	out := tgbotapi.NewMessage(chatID, "Свободное время:")
	out.ReplyMarkup = slotsKeyboard(slots)
	b.send(out)
}

func (b *Bot) handleSlotCallback(ctx context.Context, chatID int64, userID int64, st *userState, startTime string) {
	st.Draft.StartTime = startTime

	// Returning clients skip the contact questions.
	telegramID := fmt.Sprintf("%d", userID)
	if cl, err := b.api.ClientByTelegramID(ctx, telegramID); err == nil {
		st.Draft.ClientID = cl.ID
		st.Draft.ClientName = cl.Name
		st.Draft.ClientPhone = cl.Phone
		st.Step = stepConfirm
		b.sendConfirm(chatID, st)
		return
	}

	st.Step = stepClientName
	b.reply(chatID, "Введите ваше имя:")
}

func (b *Bot) handleBack(ctx context.Context, chatID int64, st *userState, target string) {
	switch target {
	case "specialist":
		specialists, err := b.api.SearchSpecialists(ctx, "", "", "")
		if err != nil || len(specialists) == 0 {
			b.reply(chatID, "Сервис временно недоступен, попробуйте позже.")
			return
		}
		st.Step = stepSpecialist
		out := tgbotapi.NewMessage(chatID, "Выберите специалиста:")
		out.ReplyMarkup = specialistsKeyboard(specialists)
		b.send(out)
	case "offering":
		b.handleSpecialistCallback(ctx, chatID, st, st.Draft.SpecialistID)
	case "date":
		st.Step = stepDate
		out := tgbotapi.NewMessage(chatID, "Выберите дату:")
		out.ReplyMarkup = datesKeyboard(time.Now())
		b.send(out)
	}
}

func (b *Bot) sendConfirm(chatID int64, st *userState) {
	text := fmt.Sprintf(
		"Проверьте запись:\n\n👤 %s\n💼 %s (%d мин)\n📅 %s\n🕑 %s\n\nИмя: %s\nТелефон: %s",
		st.Draft.SpecialistName, st.Draft.OfferingName, st.Draft.Duration,
		st.Draft.Date, st.Draft.StartTime,
		st.Draft.ClientName, st.Draft.ClientPhone,
	)
	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = confirmKeyboard()
	b.send(out)
}

func (b *Bot) handleConfirmCallback(ctx context.Context, chatID int64, userID int64, st *userState) {
	if st.Step != stepConfirm {
		return
	}

	clientID := st.Draft.ClientID
	if clientID == "" {
		telegramID := fmt.Sprintf("%d", userID)
		cl, err := b.api.CreateClient(ctx, bookingapi.CreateClientRequest{
			Name:       st.Draft.ClientName,
			Phone:      st.Draft.ClientPhone,
			TelegramID: &telegramID,
		})
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("create client failed")
			b.reply(chatID, "Не удалось сохранить контакты, попробуйте позже.")
			return
		}
		clientID = cl.ID
	}

	appt, err := b.api.CreateAppointment(ctx, bookingapi.CreateAppointmentRequest{
		ClientID:     clientID,
		SpecialistID: st.Draft.SpecialistID,
		OfferingID:   st.Draft.OfferingID,
		Date:         st.Draft.Date,
		StartTime:    st.Draft.StartTime,
	})
	if err != nil {
		if apiErr, ok := err.(*bookingapi.APIError); ok && apiErr.StatusCode == 409 {
			b.reply(chatID, "Это время уже занято. Выберите другой слот: /book")
			b.state.reset(userID)
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("create appointment failed")
		b.reply(chatID, "Не удалось создать запись, попробуйте позже.")
		return
	}

	b.state.reset(userID)
	b.reply(chatID, fmt.Sprintf(
		"✅ Запись создана!\n\n👤 %s\n💼 %s\n📅 %s, %s–%s\n\nСтатус: ожидает подтверждения.",
		appt.SpecialistName, appt.OfferingName, appt.Date, appt.StartTime, appt.EndTime,
	))
	b.sendMainMenu(chatID)
}

func (b *Bot) handleMyAppointments(ctx context.Context, msg *tgbotapi.Message) {
	telegramID := fmt.Sprintf("%d", msg.From.ID)
	cl, err := b.api.ClientByTelegramID(ctx, telegramID)
	if err != nil {
		b.reply(msg.Chat.ID, "У вас пока нет записей. Нажмите «🗓 Записаться», чтобы создать первую.")
		return
	}

	appointments, err := b.api.ListAppointments(ctx, cl.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list appointments failed")
		b.reply(msg.Chat.ID, "Сервис временно недоступен, попробуйте позже.")
		return
	}

	shown := 0
	for _, a := range appointments {
		if a.Status != "pending" && a.Status != "confirmed" {
			continue
		}
		shown++
		text := fmt.Sprintf("📅 %s, %s–%s\n👤 %s\n💼 %s\nСтатус: %s",
			a.Date, a.StartTime, a.EndTime, a.SpecialistName, a.OfferingName, statusLabel(a.Status))
		out := tgbotapi.NewMessage(msg.Chat.ID, text)
		out.ReplyMarkup = appointmentKeyboard(a.ID)
		b.send(out)
	}
	if shown == 0 {
		b.reply(msg.Chat.ID, "Активных записей нет.")
	}
}

func (b *Bot) handleCancelAppointment(ctx context.Context, chatID int64, appointmentID string) {
	if _, err := b.api.ChangeStatus(ctx, appointmentID, "cancel"); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("cancel appointment failed")
		b.reply(chatID, "Не удалось отменить запись, попробуйте позже.")
		return
	}
	b.reply(chatID, "Запись отменена.")
}

func statusLabel(status string) string {
	switch status {
	case "pending":
		return "ожидает подтверждения"
	case "confirmed":
		return "подтверждена"
	case "completed":
		return "завершена"
	case "cancelled":
		return "отменена"
	}
	return status
}

var phoneDigits = regexp.MustCompile(`\D`)

// normalizePhone strips formatting and keeps a leading plus. Accepts 10 to 15
// digits.
func normalizePhone(raw string) (string, bool) {
	plus := strings.HasPrefix(strings.TrimSpace(raw), "+")
	digits := phoneDigits.ReplaceAllString(raw, "")
	if len(digits) < 10 || len(digits) > 15 {
		return "", false
	}
	if plus {
		return "+" + digits, true
	}
	return digits, true
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Выберите действие:")
	msg.ReplyMarkup = mainMenu
	b.send(msg)
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	_ = b.limiter.Wait(context.Background())
	if _, err := b.tg.Send(msg); err != nil {
		b.logger.Warn().Err(err).Msg("telegram send failed")
	}
}

func (b *Bot) answerCallback(id string) error {
	_, err := b.tg.Request(tgbotapi.NewCallback(id, ""))
	return err
}
