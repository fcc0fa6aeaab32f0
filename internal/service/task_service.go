package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"agentdesk/internal/errors"
	"agentdesk/internal/model"
	"agentdesk/internal/repository"
)

const taskListLimit = 100

// Dispatcher sends task prompts to the agent gateway.
type Dispatcher interface {
	SendMessage(ctx context.Context, message string) error
}

// TaskUpdate carries the fields of a partial task update; nil fields are
// left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// TaskService manages dashboard tasks and their dispatch to the agent
// gateway.
type TaskService interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, title, prompt string) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, update TaskUpdate) error
	DeleteTask(ctx context.Context, id string) error
}

type taskService struct {
	repo       repository.TaskRepository
	dispatcher Dispatcher
	now        func() time.Time
}

// NewTaskService creates a task service.
func NewTaskService(repo repository.TaskRepository, dispatcher Dispatcher) TaskService {
	return &taskService{
		repo:       repo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *taskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx, taskListLimit)
}

// CreateTask inserts a pending task row, then hands the prompt to the agent
// gateway without waiting for the dispatch to happen. A failed dispatch is
// only logged; the task stays pending until the agent reports back.
func (s *taskService) CreateTask(ctx context.Context, title, prompt string) (*model.Task, error) {
	task := &model.Task{
		Title:       title,
		Description: prompt,
		Priority:    "medium",
		Status:      model.TaskStatusPending,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	go func(id, title, prompt string) {
		if err := s.dispatcher.SendMessage(context.Background(), queueMessage(id, title, prompt)); err != nil {
			log.Printf("failed to queue task %s: %v", id, err)
		}
	}(task.ID, title, prompt)

	return task, nil
}

// queueMessage formats the dispatch prompt, including the callback
// instruction the agent follows to report completion.
func queueMessage(taskID, title, prompt string) string {
	return fmt.Sprintf(
		"[DASHBOARD TASK %s] %s\n\n%s\n\nWhen complete, update task %s via PUT /api/tasks/ with status and response.",
		taskID, title, prompt, taskID,
	)
}

func (s *taskService) UpdateTask(ctx context.Context, id string, update TaskUpdate) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}

	fields := map[string]any{
		"updated_at": s.now(),
	}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Priority != nil {
		fields["priority"] = *update.Priority
	}
	if update.Status != nil {
		fields["status"] = *update.Status
		if *update.Status == model.TaskStatusCompleted {
			fields["completed_at"] = s.now()
		}
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// DeleteTask removes a task. Deleting an absent task succeeds silently.
func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
