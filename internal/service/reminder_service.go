package service

import (
	"context"

	"mindgrid/internal/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReminderService struct {
	reminderRepo ReminderRepository
	logger       *zap.Logger
}

func NewReminderService(reminderRepo ReminderRepository, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		logger:       logger,
	}
}

// ListReminders returns the user's reminders, soonest first.
func (s *ReminderService) ListReminders(ctx context.Context, userID uuid.UUID) ([]dto.ReminderResponse, error) {
	reminders, err := s.reminderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReminderResponse, len(reminders))
	for i, rem := range reminders {
		out[i] = toReminderResponse(rem)
	}
	return out, nil
}
