package service

import (
	"context"
	"testing"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoalService() (*GoalService, *testutil.MockGoalRepository, *testutil.MockNotificationRepository) {
	goalRepo := testutil.NewMockGoalRepository()
	notificationRepo := testutil.NewMockNotificationRepository()
	svc := NewGoalService(goalRepo)
	svc.SetNotificationService(NewNotificationService(notificationRepo))
	return svc, goalRepo, notificationRepo
}

func TestCreateGoal_Progress(t *testing.T) {
	svc, _, _ := newTestGoalService()

	goal, err := svc.CreateGoal(context.Background(), CreateGoalInput{
		Name:         "New Laptop",
		TargetAmount: dec("2000"),
		SavedAmount:  dec("500"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.25", goal.Progress().String())
}

func TestCreateGoal_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateGoalInput
		expected error
	}{
		{"missing name", CreateGoalInput{TargetAmount: dec("10")}, domain.ErrNameRequired},
		{"zero target", CreateGoalInput{Name: "Car", TargetAmount: dec("0")}, domain.ErrInvalidTargetAmount},
		{"negative saved", CreateGoalInput{Name: "Car", TargetAmount: dec("10"), SavedAmount: dec("-1")}, domain.ErrInvalidSavedAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, goalRepo, _ := newTestGoalService()
			_, err := svc.CreateGoal(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, goalRepo.Goals)
		})
	}
}

func TestUpdateGoal_ClampsAndNotifiesOnce(t *testing.T) {
	svc, goalRepo, notificationRepo := newTestGoalService()
	publisher := testutil.NewMockEventPublisher()
	svc.SetEventPublisher(publisher)
	goalRepo.AddGoal(&domain.Goal{Name: "New Laptop", TargetAmount: dec("2000"), SavedAmount: dec("500")})

	saved := dec("2500")
	goal, err := svc.UpdateGoal(context.Background(), 1, domain.GoalUpdate{SavedAmount: &saved})
	require.NoError(t, err)
	assert.Equal(t, "1", goal.Progress().String())
	assert.True(t, goal.IsCompleted())

	reached := notificationRepo.ByType(domain.NotificationGoalReached)
	require.Len(t, reached, 1)
	assert.Equal(t, "Goal Reached: New Laptop", reached[0].Title)

	// Already complete: no second notification
	more := dec("2600")
	_, err = svc.UpdateGoal(context.Background(), 1, domain.GoalUpdate{SavedAmount: &more})
	require.NoError(t, err)
	assert.Len(t, notificationRepo.ByType(domain.NotificationGoalReached), 1)

	assert.Contains(t, publisher.Types(), "goal.updated")
}

func TestUpdateGoal_PartialKeepsOtherFields(t *testing.T) {
	svc, goalRepo, _ := newTestGoalService()
	desc := "Summer trip"
	goalRepo.AddGoal(&domain.Goal{Name: "Vacation", TargetAmount: dec("1500"), SavedAmount: dec("300"), Description: &desc})

	name := "Holiday"
	goal, err := svc.UpdateGoal(context.Background(), 1, domain.GoalUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Holiday", goal.Name)
	assert.Equal(t, "300", goal.SavedAmount.String())
	assert.Equal(t, "Summer trip", *goal.Description)
}

func TestUpdateGoal_Errors(t *testing.T) {
	svc, goalRepo, _ := newTestGoalService()
	goalRepo.AddGoal(&domain.Goal{Name: "Car", TargetAmount: dec("100"), SavedAmount: dec("10")})

	saved := dec("5")
	_, err := svc.UpdateGoal(context.Background(), 42, domain.GoalUpdate{SavedAmount: &saved})
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)

	negative := dec("-5")
	_, err = svc.UpdateGoal(context.Background(), 1, domain.GoalUpdate{SavedAmount: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidSavedAmount)

	stored, err := goalRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "10", stored.SavedAmount.String())
}
