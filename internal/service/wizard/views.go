package wizard

import (
	"fmt"
	"strings"

	"github.com/mcompany-dev/consult-booking-bot/internal/domain"
	"github.com/mcompany-dev/consult-booking-bot/internal/locale"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/notify"
)

func revenueKeyboard(t locale.Table) [][]notify.Button {
	return [][]notify.Button{
		notify.Row(
			notify.Button{Label: t.Get("aud_rev_low"), Data: CallbackPrefix + "rev:low"},
			notify.Button{Label: t.Get("aud_rev_mid"), Data: CallbackPrefix + "rev:mid"},
			notify.Button{Label: t.Get("aud_rev_high"), Data: CallbackPrefix + "rev:high"},
		),
	}
}

func monthKeyboard(lang string) [][]notify.Button {
	names := locale.Months(lang)
	kb := make([][]notify.Button, 0, 4)
	for row := 0; row < 4; row++ {
		buttons := make([]notify.Button, 0, 3)
		for col := 0; col < 3; col++ {
			m := row*3 + col + 1
			buttons = append(buttons, notify.Button{
				Label: names[m-1],
				Data:  fmt.Sprintf("%smo:%d", CallbackPrefix, m),
			})
		}
		kb = append(kb, buttons)
	}
	return kb
}

func dayKeyboard(year, month int) [][]notify.Button {
	days := domain.DaysInMonth(year, month)
	kb := make([][]notify.Button, 0, 6)
	row := make([]notify.Button, 0, 7)
	for day := 1; day <= days; day++ {
		row = append(row, notify.Button{
			Label: fmt.Sprintf("%d", day),
			Data:  fmt.Sprintf("%sday:%d", CallbackPrefix, day),
		})
		if len(row) == 7 {
			kb = append(kb, row)
			row = make([]notify.Button, 0, 7)
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	return kb
}

// timeKeyboard сетка часовых слотов. Занятые слоты остаются видимыми,
// но помечаются и ведут в no-op, чтобы сетка не прыгала.
func timeKeyboard(t locale.Table, taken map[string]struct{}) [][]notify.Button {
	slots := domain.HourlySlots()
	busyMark := t.Get("aud_slot_busy_mark")

	kb := make([][]notify.Button, 0, 4)
	row := make([]notify.Button, 0, 3)
	for _, hhmm := range slots {
		b := notify.Button{Label: hhmm, Data: CallbackPrefix + "time:" + hhmm}
		if _, busy := taken[hhmm]; busy {
			b.Label = busyMark + " " + hhmm
			b.Data = CallbackPrefix + "noop"
		}
		row = append(row, b)
		if len(row) == 3 {
			kb = append(kb, row)
			row = make([]notify.Button, 0, 3)
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}

	kb = append(kb, notify.Row(notify.Button{
		Label: t.Get("aud_time_manual"),
		Data:  CallbackPrefix + "time:manual",
	}))
	return kb
}

func reviewKeyboard(t locale.Table) [][]notify.Button {
	return [][]notify.Button{
		notify.Row(notify.Button{Label: t.Get("aud_review_confirm"), Data: CallbackPrefix + "confirm"}),
		notify.Row(
			notify.Button{Label: t.Get("aud_review_edit"), Data: CallbackPrefix + "edit"},
			notify.Button{Label: t.Get("aud_review_cancel"), Data: CallbackPrefix + "cancel"},
		),
	}
}

func editKeyboard(t locale.Table) [][]notify.Button {
	return [][]notify.Button{
		notify.Row(
			notify.Button{Label: t.Get("aud_edit_biz_name"), Data: CallbackPrefix + "edit:name"},
			notify.Button{Label: t.Get("aud_edit_biz_desc"), Data: CallbackPrefix + "edit:desc"},
		),
		notify.Row(
			notify.Button{Label: t.Get("aud_edit_revenue"), Data: CallbackPrefix + "edit:rev"},
			notify.Button{Label: t.Get("aud_edit_datetime"), Data: CallbackPrefix + "edit:dt"},
		),
	}
}

func reviewText(t locale.Table, d *domain.Draft) string {
	var sb strings.Builder
	sb.WriteString("<b>")
	sb.WriteString(t.Get("aud_review_title"))
	sb.WriteString("</b>\n\n")
	fmt.Fprintf(&sb, "🏢 %s\n", d.BizName)
	fmt.Fprintf(&sb, "📝 %s\n", d.BizDesc)
	fmt.Fprintf(&sb, "💰 %s\n", locale.RevenueDisplay(d.Lang, d.Revenue))
	fmt.Fprintf(&sb, "📅 %04d-%02d-%02d %s", d.Year, d.Month, d.Day, d.Time)
	return sb.String()
}
