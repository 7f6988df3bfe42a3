package tasks

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/pomo/internal/store"
)

var ErrEmptyTitle = errors.New("task title is empty")

// Registry is the ordered list of tasks. Insertion order is display order.
type Registry struct {
	tasks []store.Task
	now   func() time.Time
	newID func() string
}

// New builds a registry over a previously persisted list.
func New(initial []store.Task) *Registry {
	r := &Registry{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	r.tasks = append(r.tasks, initial...)
	return r
}

// Add appends a new task. estimated is kept as given, with no clamping.
func (r *Registry) Add(title string, estimated int) (store.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Task{}, ErrEmptyTitle
	}
	t := store.Task{
		ID:        r.newID(),
		Title:     title,
		Pomodoros: estimated,
		CreatedAt: r.now(),
	}
	r.tasks = append(r.tasks, t)
	return t, nil
}

// ToggleComplete flips the completed flag. Unknown ids are ignored.
func (r *Registry) ToggleComplete(id string) (store.Task, bool) {
	i := r.index(id)
	if i < 0 {
		return store.Task{}, false
	}
	r.tasks[i].Completed = !r.tasks[i].Completed
	return r.tasks[i], true
}

func (r *Registry) Delete(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return true
}

// IncrementProgress records one more finished pomodoro. Progress may run
// past the task's target.
func (r *Registry) IncrementProgress(id string) (store.Task, bool) {
	i := r.index(id)
	if i < 0 {
		return store.Task{}, false
	}
	r.tasks[i].CompletedPomodoros++
	return r.tasks[i], true
}

func (r *Registry) Get(id string) (store.Task, bool) {
	i := r.index(id)
	if i < 0 {
		return store.Task{}, false
	}
	return r.tasks[i], true
}

// List returns a copy of the tasks in insertion order.
func (r *Registry) List() []store.Task {
	out := make([]store.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *Registry) Len() int { return len(r.tasks) }

func (r *Registry) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
