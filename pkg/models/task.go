package models

type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
)

// DatetimeLayout describes the due date/time token entered by users.
// The value is stored verbatim and never parsed.
const DatetimeLayout = "YYYY-MM-DDTHH:MM"

type Task struct {
	Title     string `json:"title"`
	Datetime  string `json:"datetime"`
	Completed bool   `json:"completed"`
}

func (t Task) Status() TaskStatus {
	if t.Completed {
		return TaskStatusCompleted
	}
	return TaskStatusActive
}
