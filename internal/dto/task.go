package dto

import "time"

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
}

// UpdateTaskRequest changes only the fields that are present.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Source      string     `json:"source"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type GenerateTaskResponse struct {
	Task     TaskResponse     `json:"task"`
	Analysis AnalysisResponse `json:"analysis"`
}

type JournalTasksRequest struct {
	JournalText string `json:"journalText"`
}

type ClarificationAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ClarifyTasksRequest struct {
	JournalText string                `json:"journalText"`
	Answers     []ClarificationAnswer `json:"answers"`
}

type SuggestedTask struct {
	Task     string     `json:"task"`
	Reason   string     `json:"reason"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"dueDate"`
}

// TaskPreviewResponse is an unsaved set of suggestions for the user to
// review.
type TaskPreviewResponse struct {
	Tasks             []SuggestedTask `json:"tasks"`
	FollowUpQuestions []string        `json:"followUpQuestions"`
	Summary           string          `json:"summary"`
	Mood              *string         `json:"mood"`
	Priorities        []string        `json:"priorities"`
	StressFactors     []string        `json:"stressFactors"`
	ImportantEvents   []string        `json:"importantEvents"`
}

type ConfirmTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
}

type ConfirmTasksRequest struct {
	Tasks           []ConfirmTask `json:"tasks"`
	JournalText     string        `json:"journalText"`
	Summary         string        `json:"summary"`
	Mood            *string       `json:"mood"`
	Priorities      []string      `json:"priorities"`
	StressFactors   []string      `json:"stressFactors"`
	ImportantEvents []string      `json:"importantEvents"`
}

type ConfirmTasksResponse struct {
	Message string           `json:"message"`
	Tasks   []TaskResponse   `json:"tasks"`
	Journal *JournalResponse `json:"journal,omitempty"`
}

type DashboardResponse struct {
	Total          int               `json:"total"`
	Completed      int               `json:"completed"`
	Pending        int               `json:"pending"`
	HighPriority   int               `json:"highPriority"`
	Upcoming       []TaskResponse    `json:"upcoming"`
	RecentJournals []JournalResponse `json:"recentJournals"`
	TotalDocuments int               `json:"totalDocuments"`
}
