package domain

import "time"

// TaskStatus is the lifecycle of an assigned wellbeing task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Task is one wellbeing activity assigned to a user. Duration is in minutes.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
	Type        string     `json:"type"`
	Intensity   string     `json:"intensity"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Status      TaskStatus `json:"status"`
}

// Expired reports whether the task's advisory expiry has passed.
func (t Task) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// TaskAssignmentBatch is the set of tasks produced for a user on a given date
// when their session completes. A new completion for the same date replaces
// the prior batch wholesale.
type TaskAssignmentBatch struct {
	Username  string    `json:"username"`
	Date      string    `json:"date"`
	Emotion   Emotion   `json:"emotion"`
	Tasks     []Task    `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
}
