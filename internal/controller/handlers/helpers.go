package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/clinic_scheduler/internal/formatting"
	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// commandArgs возвращает аргументы после команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

func parsePositiveID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return id, nil
}

// errorText превращает ошибку сервиса в ответ пользователю
func (h *Handlers) errorText(err error) string {
	var leave *service.LeaveError
	switch {
	case errors.As(err, &leave):
		return fmt.Sprintf("⛔ The %s is unavailable on %s.", leave.Module, formatting.FormatDate(leave.Date))
	case errors.Is(err, service.ErrInvalidSlotRequest), errors.Is(err, service.ErrInvalidSchedule):
		return "❌ " + err.Error()
	default:
		h.logger.Error("Command failed", zap.Error(err))
		return "❌ Something went wrong. Please try again later."
	}
}
