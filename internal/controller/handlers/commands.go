package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/clinic_scheduler/internal/controller/params"
	"github.com/Freeeeeet/clinic_scheduler/internal/formatting"
	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	slotsUsage    = "Usage: /slots <doctor_id> <clinic_id> <date> [service_ids]\nExample: /slots 12 3 2025-03-10 4,7"
	sessionsUsage = "Usage: /sessions <doctor_id> <clinic_id>"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "there"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"👋 Hello, %s!\n\n"+
			"This bot shows free appointment slots and doctor schedules.\n\n"+
			"%s\n%s\n\n"+
			"/help - Command reference",
		name, slotsUsage, sessionsUsage,
	))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "📚 Commands:\n\n"+
		"/slots <doctor_id> <clinic_id> <date> [service_ids] - Free slots on a date\n"+
		"/sessions <doctor_id> <clinic_id> - Weekly schedule\n"+
		"/help - Show this help\n\n"+
		"Dates: 2025-03-10, 10-03-2025, 03/10/2025 or 2025/03/10.\n"+
		"Service ids are comma-separated; without them the session slot length is used.")
}

// HandleSlots обрабатывает команду /slots
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.logger.Info("HandleSlots called",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text))

	h.sendMessage(ctx, b, update.Message.Chat.ID, h.SlotsReply(ctx, update.Message.Text))
}

// HandleSessions обрабатывает команду /sessions
func (h *Handlers) HandleSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.logger.Info("HandleSessions called",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text))

	h.sendMessage(ctx, b, update.Message.Chat.ID, h.SessionsReply(ctx, update.Message.Text))
}

// SlotsReply формирует ответ на /slots со свободными слотами
func (h *Handlers) SlotsReply(ctx context.Context, text string) string {
	args := commandArgs(text)
	if len(args) < 3 || len(args) > 4 {
		return slotsUsage
	}

	doctorID, err := parsePositiveID(args[0], "doctor_id")
	if err != nil {
		return "❌ " + err.Error() + "\n\n" + slotsUsage
	}
	clinicID, err := parsePositiveID(args[1], "clinic_id")
	if err != nil {
		return "❌ " + err.Error() + "\n\n" + slotsUsage
	}

	req := service.SlotRequest{
		Date:               args[2],
		DoctorID:           doctorID,
		ClinicID:           clinicID,
		OnlyAvailableSlots: true,
	}
	if len(args) == 4 {
		if req.ServiceIDs, err = params.ParseIDList(args[3]); err != nil {
			return "❌ " + err.Error() + "\n\n" + slotsUsage
		}
	}

	day, err := h.slots.AvailableSlots(ctx, req)
	if err != nil {
		return h.errorText(err)
	}

	return formatDaySlots(day)
}

// SessionsReply формирует ответ на /sessions с недельным расписанием
func (h *Handlers) SessionsReply(ctx context.Context, text string) string {
	args := commandArgs(text)
	if len(args) != 2 {
		return sessionsUsage
	}

	doctorID, err := parsePositiveID(args[0], "doctor_id")
	if err != nil {
		return "❌ " + err.Error() + "\n\n" + sessionsUsage
	}
	clinicID, err := parsePositiveID(args[1], "clinic_id")
	if err != nil {
		return "❌ " + err.Error() + "\n\n" + sessionsUsage
	}

	sessions, err := h.schedules.ListDoctorSessions(ctx, doctorID, clinicID)
	if err != nil {
		return h.errorText(err)
	}
	if len(sessions) == 0 {
		return "📭 No schedule saved for this doctor at this clinic."
	}

	var sb strings.Builder
	sb.WriteString("🗓 Weekly schedule:\n")
	for _, s := range sessions {
		sb.WriteString("\n• ")
		sb.WriteString(formatting.FormatSessionRange(s))
		sb.WriteString(", ")
		sb.WriteString(formatting.FormatDuration(s.Minutes()))
		if s.TimeSlot > 0 {
			sb.WriteString(" (")
			sb.WriteString(formatting.FormatDuration(s.TimeSlot))
			sb.WriteString(" slots)")
		}
	}
	return sb.String()
}

func formatDaySlots(day *model.DaySlots) string {
	if day == nil || len(day.Sessions) == 0 {
		return "📭 The doctor has no sessions on that day."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Slots for %s\n", day.Date)
	for i := range day.Sessions {
		s := day.At(i)
		fmt.Fprintf(&sb, "\nSession %d: ", s.Index+1)
		switch s.State {
		case model.SessionWithSlots:
			times := make([]string, 0, len(s.Slots))
			for _, slot := range s.Slots {
				times = append(times, slot.Time)
			}
			sb.WriteString(strings.Join(times, ", "))
		case model.SessionWithNoSlots:
			sb.WriteString("fully booked")
		default:
			sb.WriteString("no session")
		}
	}
	return sb.String()
}
