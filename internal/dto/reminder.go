package dto

import "time"

type ReminderResponse struct {
	ID           string    `json:"id"`
	DocumentID   *string   `json:"documentId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ReminderDate time.Time `json:"reminderDate"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
