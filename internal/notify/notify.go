// Package notify delivers reminder notifications. The reminder service
// decides who gets notified and when; implementations here only carry the
// message.
package notify

import (
	"context"
	"fmt"
	"log"

	"taskman/internal/model"
)

// Notifier receives batches of tasks that just became overdue or upcoming.
type Notifier interface {
	NotifyOverdue(ctx context.Context, tasks []model.Task) error
	NotifyUpcoming(ctx context.Context, tasks []model.Task) error
}

// LogNotifier writes notifications to the process log. It is the default
// delivery channel when nothing else is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyOverdue(_ context.Context, tasks []model.Task) error {
	for _, t := range tasks {
		log.Printf("reminder: task %d %q overdue since %s", t.ID, t.Title, t.DueTime.Format("2006-01-02 15:04"))
	}
	return nil
}

func (n *LogNotifier) NotifyUpcoming(_ context.Context, tasks []model.Task) error {
	for _, t := range tasks {
		log.Printf("reminder: task %d %q due %s", t.ID, t.Title, t.DueTime.Format("2006-01-02 15:04"))
	}
	return nil
}

// Multi fans a notification out to several notifiers. Every notifier runs;
// the first error is returned.
type Multi []Notifier

func (m Multi) NotifyOverdue(ctx context.Context, tasks []model.Task) error {
	var first error
	for _, n := range m {
		if err := n.NotifyOverdue(ctx, tasks); err != nil && first == nil {
			first = fmt.Errorf("notify overdue: %w", err)
		}
	}
	return first
}

func (m Multi) NotifyUpcoming(ctx context.Context, tasks []model.Task) error {
	var first error
	for _, n := range m {
		if err := n.NotifyUpcoming(ctx, tasks); err != nil && first == nil {
			first = fmt.Errorf("notify upcoming: %w", err)
		}
	}
	return first
}
