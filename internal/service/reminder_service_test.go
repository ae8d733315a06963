package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/model"
	"taskman/internal/repository"
)

// recordingNotifier captures delivered batches; safe for use from the
// scheduler goroutine.
type recordingNotifier struct {
	mu       sync.Mutex
	overdue  [][]model.Task
	upcoming [][]model.Task
}

func (n *recordingNotifier) NotifyOverdue(_ context.Context, tasks []model.Task) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.overdue = append(n.overdue, tasks)
	return nil
}

func (n *recordingNotifier) NotifyUpcoming(_ context.Context, tasks []model.Task) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.upcoming = append(n.upcoming, tasks)
	return nil
}

func (n *recordingNotifier) overdueIDs() []uint {
	n.mu.Lock()
	defer n.mu.Unlock()
	var ids []uint
	for _, batch := range n.overdue {
		for _, t := range batch {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (n *recordingNotifier) upcomingIDs() []uint {
	n.mu.Lock()
	defer n.mu.Unlock()
	var ids []uint
	for _, batch := range n.upcoming {
		for _, t := range batch {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

type reminderFixture struct {
	taskRepo  *repository.TaskRepository
	tagRepo   *repository.TagRepository
	taskSvc   *TaskService
	reminders *ReminderService
	notifier  *recordingNotifier
}

func newReminderFixture(t *testing.T) *reminderFixture {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	f := &reminderFixture{
		taskRepo: repository.NewTaskRepository(db),
		tagRepo:  repository.NewTagRepository(db),
		notifier: &recordingNotifier{},
	}
	f.taskSvc = NewTaskService(f.taskRepo, f.tagRepo)
	f.reminders = NewReminderService(f.taskRepo, f.notifier)
	f.taskSvc.SetInvalidator(f.reminders)
	return f
}

func (f *reminderFixture) addTask(t *testing.T, title string, due time.Time) *model.Task {
	t.Helper()
	task, err := f.taskSvc.Create(context.Background(), TaskInput{
		Title:    title,
		Category: model.CategoryWork,
		Priority: model.PriorityHigh,
		DueTime:  due,
	})
	require.NoError(t, err)
	return task
}

func TestUpcomingNotifiedExactlyOnce(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.reminders.SetUpcomingThreshold(30 * time.Minute)
	task := f.addTask(t, "soon", now.Add(10*time.Minute))

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	require.Equal(t, []uint{task.ID}, f.notifier.upcomingIDs())
	assert.Empty(t, f.notifier.overdueIDs())

	// A second consecutive tick produces no duplicate.
	require.NoError(t, f.reminders.CheckTasks(ctx, now.Add(time.Second)))
	assert.Equal(t, []uint{task.ID}, f.notifier.upcomingIDs())
}

func TestOverdueNotifiedThenCompletionClears(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	task := f.addTask(t, "late", now.Add(-time.Minute))

	listed, err := f.taskRepo.ListOverdueIncomplete(ctx, now)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	require.Equal(t, []uint{task.ID}, f.notifier.overdueIDs())

	require.NoError(t, f.taskSvc.SetStatus(ctx, task.ID, true))

	listed, err = f.taskRepo.ListOverdueIncomplete(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, f.reminders.CheckTasks(ctx, now.Add(time.Second)))
	assert.Equal(t, []uint{task.ID}, f.notifier.overdueIDs())
}

func TestOverdueAndUpcomingDisjoint(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.reminders.SetUpcomingThreshold(time.Hour)
	f.addTask(t, "late", now.Add(-time.Minute))
	f.addTask(t, "soon", now.Add(time.Minute))

	require.NoError(t, f.reminders.CheckTasks(ctx, now))

	require.Len(t, f.notifier.overdueIDs(), 1)
	require.Len(t, f.notifier.upcomingIDs(), 1)
	assert.NotEqual(t, f.notifier.overdueIDs()[0], f.notifier.upcomingIDs()[0])
}

func TestUpcomingThresholdBoundary(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.reminders.SetUpcomingThreshold(30 * time.Minute)
	atLimit := f.addTask(t, "at limit", now.Add(30*time.Minute))
	f.addTask(t, "past limit", now.Add(31*time.Minute))

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	assert.Equal(t, []uint{atLimit.ID}, f.notifier.upcomingIDs())
}

func TestNarrowerThresholdDoesNotRenotify(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.reminders.SetUpcomingThreshold(time.Hour)
	f.addTask(t, "soon", now.Add(45*time.Minute))

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	require.Len(t, f.notifier.upcomingIDs(), 1)

	// Narrowing keeps the already-notified mark in place.
	f.reminders.SetUpcomingThreshold(10 * time.Minute)
	require.NoError(t, f.reminders.CheckTasks(ctx, now.Add(time.Second)))
	assert.Len(t, f.notifier.upcomingIDs(), 1)
}

func TestInvalidateAllowsRenotify(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	task := f.addTask(t, "late", now.Add(-time.Minute))

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	require.Len(t, f.notifier.overdueIDs(), 1)

	// An edit resets reminder bookkeeping; still overdue, so the next
	// tick notifies again.
	_, err := f.taskSvc.Update(ctx, task.ID, TaskInput{
		Title:    "late, retitled",
		Category: model.CategoryWork,
		Priority: model.PriorityHigh,
		DueTime:  now.Add(-time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, f.reminders.CheckTasks(ctx, now.Add(time.Second)))
	assert.Equal(t, []uint{task.ID, task.ID}, f.notifier.overdueIDs())
}

func TestResetAllowsRenotify(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	task := f.addTask(t, "late", now.Add(-time.Minute))

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	f.reminders.Reset()
	require.NoError(t, f.reminders.CheckTasks(ctx, now.Add(time.Second)))

	assert.Equal(t, []uint{task.ID, task.ID}, f.notifier.overdueIDs())
}

func TestArchivedTasksNeverNotified(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	task := f.addTask(t, "late but done", now.Add(-time.Hour))
	require.NoError(t, f.taskSvc.SetStatus(ctx, task.ID, true))
	count, err := f.taskSvc.ArchiveCompleted(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	assert.Empty(t, f.notifier.overdueIDs())
	assert.Empty(t, f.notifier.upcomingIDs())
}

func TestCompletedTasksNotUpcoming(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.reminders.SetUpcomingThreshold(time.Hour)
	task := f.addTask(t, "done early", now.Add(10*time.Minute))
	require.NoError(t, f.taskSvc.SetStatus(ctx, task.ID, true))

	require.NoError(t, f.reminders.CheckTasks(ctx, now))
	assert.Empty(t, f.notifier.upcomingIDs())
}
