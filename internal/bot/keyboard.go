package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/om1ji/appointment-booking-backend/internal/bookingapi"
)

func specialistsKeyboard(specialists []bookingapi.Specialist) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range specialists {
		label := s.Name
		if s.Specialization != "" {
			label = fmt.Sprintf("%s — %s", s.Name, s.Specialization)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "spec:"+s.ID),
		))
	}
	rows = append(rows, cancelRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func offeringsKeyboard(offerings []bookingapi.Offering) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, o := range offerings {
		label := fmt.Sprintf("%s · %d мин · %.0f₽", o.Name, o.DurationMinutes, o.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "offer:"+o.ID),
		))
	}
	rows = append(rows, backRow("back:specialist"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// datesKeyboard offers the next seven days, two per row.
func datesKeyboard(now time.Time) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		label := day.Format("02.01")
		switch i {
		case 0:
			label = "Сегодня"
		case 1:
			label = "Завтра"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "date:"+date))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	rows = append(rows, backRow("back:offering"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// slotsKeyboard lists free start times, three per row.
func slotsKeyboard(slots []bookingapi.Slot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, s := range slots {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(s.StartTime, "slot:"+s.StartTime))
		if len(row) == 3 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	rows = append(rows, backRow("back:date"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "confirm"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "cancel"),
		),
	)
}

func appointmentKeyboard(id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить запись", "cancelappt:"+id),
		),
	)
}

func backRow(data string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", data),
	)
}

func cancelRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "cancel"),
	)
}
