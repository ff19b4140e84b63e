package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

const maxFallbackTaskLength = 50

var (
	reSentenceEnd = regexp.MustCompile(`[.!?]`)
	taskTriggers  = []string{"need to", "must", "should", "todo"}
)

var journalSchema = jsonschema.MustCompileString("journal.json", `{
  "type": "object",
  "required": ["mood"],
  "properties": {
    "mood": {"type": "string"},
    "moodScore": {"type": "number"},
    "stressLevel": {"type": "string"},
    "energyLevel": {"type": "string"},
    "workload": {"type": "string"},
    "personalityInsight": {"type": "string"},
    "patterns": {
      "type": "object",
      "properties": {
        "strengths": {"type": "array", "items": {"type": "string"}},
        "areasForGrowth": {"type": "array", "items": {"type": "string"}}
      }
    },
    "priorities": {"type": "array", "items": {"type": "string"}},
    "suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "category": {"type": "string"},
          "icon": {"type": "string"},
          "text": {"type": "string"},
          "priority": {"type": "string"}
        }
      }
    }
  }
}`)

var taskPlanSchema = jsonschema.MustCompileString("tasks.json", `{
  "type": "object",
  "required": ["tasks"],
  "properties": {
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["task"],
        "properties": {
          "task": {"type": "string"},
          "reason": {"type": ["string", "null"]},
          "priority": {"type": ["string", "null"]},
          "dueDate": {"type": ["string", "null"]}
        }
      }
    },
    "followUpQuestions": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": ["string", "null"]},
    "mood": {"type": ["string", "null"]},
    "priorities": {"type": "array", "items": {"type": "string"}},
    "stressFactors": {"type": "array", "items": {"type": "string"}},
    "importantEvents": {"type": "array", "items": {"type": "string"}}
  }
}`)

type JournalPatterns struct {
	Strengths      []string `json:"strengths"`
	AreasForGrowth []string `json:"areasForGrowth"`
}

type JournalSuggestion struct {
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

// JournalAnalysis is the mood and workload reading of a journal entry.
type JournalAnalysis struct {
	Mood               string              `json:"mood"`
	MoodScore          float64             `json:"moodScore"`
	StressLevel        string              `json:"stressLevel"`
	EnergyLevel        string              `json:"energyLevel"`
	Workload           string              `json:"workload"`
	PersonalityInsight string              `json:"personalityInsight"`
	Patterns           JournalPatterns     `json:"patterns"`
	Priorities         []string            `json:"priorities"`
	Suggestions        []JournalSuggestion `json:"suggestions"`
}

// NeutralJournalAnalysis is returned whenever the model cannot be used.
func NeutralJournalAnalysis() JournalAnalysis {
	return JournalAnalysis{
		Mood:               "Neutral",
		MoodScore:          5,
		StressLevel:        "Low",
		EnergyLevel:        "Medium",
		Workload:           "Medium",
		PersonalityInsight: "You seem thoughtful.",
		Patterns:           JournalPatterns{Strengths: []string{}, AreasForGrowth: []string{}},
		Priorities:         []string{},
		Suggestions:        []JournalSuggestion{},
	}
}

type TaskSuggestion struct {
	Task     string     `json:"task"`
	Reason   string     `json:"reason"`
	Priority Priority   `json:"priority"`
	DueDate  *time.Time `json:"dueDate"`
}

// TaskPlan is a set of suggested tasks with the context the model gave for
// them. Only Tasks is populated by the local fallback.
type TaskPlan struct {
	Tasks             []TaskSuggestion `json:"tasks"`
	FollowUpQuestions []string         `json:"followUpQuestions"`
	Summary           string           `json:"summary"`
	Mood              *string          `json:"mood"`
	Priorities        []string         `json:"priorities"`
	StressFactors     []string         `json:"stressFactors"`
	ImportantEvents   []string         `json:"importantEvents"`
}

type ClarificationAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnalyzeJournal reads mood, stress and workload from a journal entry.
func (a *Analyzer) AnalyzeJournal(ctx context.Context, text string) JournalAnalysis {
	var out JournalAnalysis
	if err := a.completeValidated(ctx, journalPrompt(a.limit(text)), journalSchema, &out); err != nil {
		a.logger.Warn("Journal analysis falling back to neutral reading", zap.Error(err))
		return NeutralJournalAnalysis()
	}
	if out.Patterns.Strengths == nil {
		out.Patterns.Strengths = []string{}
	}
	if out.Patterns.AreasForGrowth == nil {
		out.Patterns.AreasForGrowth = []string{}
	}
	if out.Priorities == nil {
		out.Priorities = []string{}
	}
	if out.Suggestions == nil {
		out.Suggestions = []JournalSuggestion{}
	}
	return out
}

// SuggestTasks extracts actionable tasks from free text.
func (a *Analyzer) SuggestTasks(ctx context.Context, text string) TaskPlan {
	return a.suggest(ctx, text, taskPrompt(a.limit(text), nil))
}

// ClarifyTasks re-runs task extraction with the user's answers to earlier
// follow-up questions.
func (a *Analyzer) ClarifyTasks(ctx context.Context, text string, answers []ClarificationAnswer) TaskPlan {
	return a.suggest(ctx, text, taskPrompt(a.limit(text), answers))
}

func (a *Analyzer) suggest(ctx context.Context, text, prompt string) TaskPlan {
	var raw struct {
		Tasks []struct {
			Task     string `json:"task"`
			Reason   string `json:"reason"`
			Priority string `json:"priority"`
			DueDate  string `json:"dueDate"`
		} `json:"tasks"`
		FollowUpQuestions []string `json:"followUpQuestions"`
		Summary           string   `json:"summary"`
		Mood              *string  `json:"mood"`
		Priorities        []string `json:"priorities"`
		StressFactors     []string `json:"stressFactors"`
		ImportantEvents   []string `json:"importantEvents"`
	}
	if err := a.completeValidated(ctx, prompt, taskPlanSchema, &raw); err != nil {
		a.logger.Warn("Task generation falling back to trigger phrases", zap.Error(err))
		return LocalSuggestTasks(text)
	}

	plan := emptyPlan()
	for _, t := range raw.Tasks {
		title := strings.TrimSpace(t.Task)
		if title == "" {
			continue
		}
		reason := strings.TrimSpace(t.Reason)
		if reason == "" {
			reason = "AI Insight"
		}
		plan.Tasks = append(plan.Tasks, TaskSuggestion{
			Task:     title,
			Reason:   reason,
			Priority: NormalizePriority(t.Priority),
			DueDate:  ParseDate(t.DueDate),
		})
	}
	plan.Summary = raw.Summary
	plan.Mood = raw.Mood
	if raw.FollowUpQuestions != nil {
		plan.FollowUpQuestions = raw.FollowUpQuestions
	}
	if raw.Priorities != nil {
		plan.Priorities = raw.Priorities
	}
	if raw.StressFactors != nil {
		plan.StressFactors = raw.StressFactors
	}
	if raw.ImportantEvents != nil {
		plan.ImportantEvents = raw.ImportantEvents
	}
	return plan
}

// LocalSuggestTasks turns every sentence containing a trigger phrase such as
// "need to" or "must" into a MEDIUM task.
func LocalSuggestTasks(text string) TaskPlan {
	plan := emptyPlan()
	for _, sentence := range reSentenceEnd.Split(text, -1) {
		lower := strings.ToLower(sentence)
		for _, trigger := range taskTriggers {
			if strings.Contains(lower, trigger) {
				plan.Tasks = append(plan.Tasks, TaskSuggestion{
					Task:     truncateRunes(strings.TrimSpace(sentence), maxFallbackTaskLength),
					Reason:   "Extracted from journal",
					Priority: PriorityMedium,
				})
				break
			}
		}
	}
	return plan
}

func emptyPlan() TaskPlan {
	return TaskPlan{
		Tasks:             []TaskSuggestion{},
		FollowUpQuestions: []string{},
		Priorities:        []string{},
		StressFactors:     []string{},
		ImportantEvents:   []string{},
	}
}

// completeValidated decodes the model's JSON into out only when it matches
// schema; a mismatch is reported like any other failure.
func (a *Analyzer) completeValidated(ctx context.Context, prompt string, schema *jsonschema.Schema, out any) error {
	candidate, err := a.completeJSON(ctx, prompt)
	if err != nil {
		return err
	}
	if err := schema.Validate(candidate); err != nil {
		return fmt.Errorf("completion does not match schema: %w", err)
	}

	b, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("re-encode completion: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode completion: %w", err)
	}
	return nil
}

func journalPrompt(text string) string {
	return fmt.Sprintf(`Analyze this journal entry and return ONLY JSON with:

{
  "mood": "Happy | Sad | Stressed | Energetic | Frustrated | Neutral",
  "moodScore": 1-10,
  "stressLevel": "Low | Medium | High",
  "energyLevel": "Low | Medium | High",
  "workload": "Low | Medium | High",
  "personalityInsight": "A 2-3 sentence analysis",
  "patterns": {
    "strengths": ["string"],
    "areasForGrowth": ["string"]
  },
  "priorities": ["string"],
  "suggestions": [
    {
      "category": "Productivity | Well-being | etc",
      "icon": "emoji",
      "text": "actionable tip",
      "priority": "high | medium | low"
    }
  ]
}

Journal:
%s
`, text)
}

func taskPrompt(text string, answers []ClarificationAnswer) string {
	var b strings.Builder
	b.WriteString(`Extract actionable tasks from this journal. Return ONLY JSON:
{
  "tasks": [
    {
      "task": "Task title",
      "reason": "Why this task was created",
      "priority": "HIGH | MEDIUM | LOW",
      "dueDate": "YYYY-MM-DD or null"
    }
  ],
  "followUpQuestions": ["question that would make the tasks more precise"],
  "summary": "one sentence summary of the entry",
  "mood": "one word mood or null",
  "priorities": ["string"],
  "stressFactors": ["string"],
  "importantEvents": ["string"]
}

Journal:
`)
	b.WriteString(text)
	b.WriteString("\n")

	if len(answers) > 0 {
		b.WriteString("\nThe user answered these follow-up questions:\n")
		for _, qa := range answers {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", qa.Question, qa.Answer)
		}
	}
	return b.String()
}
