package service

import (
	"mindgrid/internal/analysis"
	"mindgrid/internal/dto"
	"mindgrid/internal/models"
)

func toAnalysisResponse(rec analysis.Record, priority analysis.Priority) dto.AnalysisResponse {
	return dto.AnalysisResponse{
		DocumentType: string(rec.DocumentType),
		Category:     string(rec.Category),
		Summary:      rec.Summary,
		Provider:     rec.Provider,
		IDNumber:     rec.IDNumber,
		Amount:       rec.Amount,
		IssueDate:    rec.IssueDate,
		DueDate:      rec.DueDate,
		ExpiryDate:   rec.ExpiryDate,
		Priority:     string(priority),
	}
}

func toDocumentResponse(doc *models.Document, withText bool) dto.DocumentResponse {
	resp := dto.DocumentResponse{
		ID:        doc.ID.String(),
		FileName:  doc.FileName,
		FileURL:   doc.FileURL,
		MimeType:  doc.MimeType,
		FileSize:  doc.FileSize,
		Analysis:  toAnalysisResponse(doc.Record(), doc.Priority),
		CreatedAt: doc.CreatedAt,
	}
	if withText {
		resp.ExtractedText = doc.ExtractedText
	}
	return resp
}

func toReminderResponse(rem *models.Reminder) dto.ReminderResponse {
	resp := dto.ReminderResponse{
		ID:           rem.ID.String(),
		Title:        rem.Title,
		Description:  rem.Description,
		ReminderDate: rem.ReminderDate,
		Type:         string(rem.Type),
		Status:       string(rem.Status),
		CreatedAt:    rem.CreatedAt,
	}
	if rem.DocumentID != nil {
		id := rem.DocumentID.String()
		resp.DocumentID = &id
	}
	return resp
}

func toTaskResponse(t *models.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Source:      string(t.Source),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*models.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toJournalResponse(j *models.Journal) dto.JournalResponse {
	return dto.JournalResponse{
		ID:         j.ID.String(),
		Content:    j.Content,
		QuickMood:  j.QuickMood,
		Mood:       j.Mood,
		Summary:    j.Summary,
		EntryDate:  j.EntryDate,
		AIAnalysis: j.AIAnalysis,
		CreatedAt:  j.CreatedAt,
	}
}

func toJournalResponses(journals []*models.Journal) []dto.JournalResponse {
	out := make([]dto.JournalResponse, len(journals))
	for i, j := range journals {
		out[i] = toJournalResponse(j)
	}
	return out
}

func toTaskPreview(plan analysis.TaskPlan) dto.TaskPreviewResponse {
	tasks := make([]dto.SuggestedTask, len(plan.Tasks))
	for i, t := range plan.Tasks {
		tasks[i] = dto.SuggestedTask{
			Task:     t.Task,
			Reason:   t.Reason,
			Priority: string(t.Priority),
			DueDate:  t.DueDate,
		}
	}
	return dto.TaskPreviewResponse{
		Tasks:             tasks,
		FollowUpQuestions: plan.FollowUpQuestions,
		Summary:           plan.Summary,
		Mood:              plan.Mood,
		Priorities:        plan.Priorities,
		StressFactors:     plan.StressFactors,
		ImportantEvents:   plan.ImportantEvents,
	}
}
