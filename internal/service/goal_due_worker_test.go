package service

import (
	"context"
	"testing"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoalDueWorker(config GoalDueWorkerConfig) (*GoalDueWorker, *testutil.MockGoalRepository, *testutil.MockNotificationRepository) {
	goalRepo := testutil.NewMockGoalRepository()
	notificationRepo := testutil.NewMockNotificationRepository()
	w := NewGoalDueWorker(goalRepo, NewNotificationService(notificationRepo), zerolog.Nop(), config)
	w.now = fixedClock
	return w, goalRepo, notificationRepo
}

func addDueGoal(repo *testutil.MockGoalRepository, name string, due time.Time, saved string) {
	repo.AddGoal(&domain.Goal{Name: name, TargetAmount: dec("100"), SavedAmount: dec(saved), TargetDate: &due})
}

func TestGoalDueMessage(t *testing.T) {
	due := day(2025, time.March, 22)
	tests := []struct {
		days     int
		expected string
	}{
		{0, "Goal 'Car' is due today (22 Mar)"},
		{1, "Goal 'Car' is due tomorrow (22 Mar)"},
		{4, "Goal 'Car' is due in 4 days (22 Mar)"},
		{-1, "Goal 'Car' was due yesterday (22 Mar)"},
		{-12, "Goal 'Car' was due 12 days ago (22 Mar)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GoalDueMessage("Car", due, tt.days))
	}
}

func TestGoalDueWorker_CheckGoalsWindow(t *testing.T) {
	w, goalRepo, notificationRepo := newTestGoalDueWorker(GoalDueWorkerConfig{WindowDays: 5})

	addDueGoal(goalRepo, "today", day(2025, time.March, 15), "0")
	addDueGoal(goalRepo, "soon", day(2025, time.March, 20), "0")
	addDueGoal(goalRepo, "later", day(2025, time.March, 21), "0")
	addDueGoal(goalRepo, "overdue", day(2025, time.February, 13), "0")
	addDueGoal(goalRepo, "forgotten", day(2025, time.February, 12), "0")
	addDueGoal(goalRepo, "done", day(2025, time.March, 16), "100")
	goalRepo.AddGoal(&domain.Goal{Name: "undated", TargetAmount: dec("100")})

	sent := w.CheckGoals(context.Background())
	assert.Equal(t, 3, sent)

	var titles []string
	for _, n := range notificationRepo.ByType(domain.NotificationGoalDueSoon) {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"Goal Due Soon: today", "Goal Due Soon: soon", "Goal Due Soon: overdue"}, titles)
}

func TestGoalDueWorker_NotifiesOncePerDay(t *testing.T) {
	w, goalRepo, notificationRepo := newTestGoalDueWorker(GoalDueWorkerConfig{})
	addDueGoal(goalRepo, "Vacation", day(2025, time.March, 17), "10")

	assert.Equal(t, 1, w.CheckGoals(context.Background()))
	assert.Equal(t, 0, w.CheckGoals(context.Background()))

	w.now = func() time.Time { return testNow.AddDate(0, 0, 1) }
	assert.Equal(t, 1, w.CheckGoals(context.Background()))

	msgs := notificationRepo.ByType(domain.NotificationGoalDueSoon)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Goal 'Vacation' is due in 2 days (17 Mar)", msgs[0].Message)
	assert.Equal(t, "Goal 'Vacation' is due tomorrow (17 Mar)", msgs[1].Message)
}

func TestGoalDueWorker_StartStop(t *testing.T) {
	w, goalRepo, notificationRepo := newTestGoalDueWorker(GoalDueWorkerConfig{Interval: time.Hour})
	addDueGoal(goalRepo, "Laptop", day(2025, time.March, 15), "0")

	w.Start(context.Background())
	assert.True(t, w.IsRunning())

	// Runs once immediately on start
	require.Eventually(t, func() bool {
		return len(notificationRepo.ByType(domain.NotificationGoalDueSoon)) == 1
	}, time.Second, 5*time.Millisecond)

	w.Stop()
	assert.False(t, w.IsRunning())

	// Stopping twice is safe
	w.Stop()
}

func TestGoalDueWorker_StopsOnContextCancel(t *testing.T) {
	w, _, _ := newTestGoalDueWorker(GoalDueWorkerConfig{Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	w.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return !w.IsRunning() }, time.Second, 5*time.Millisecond)
}
