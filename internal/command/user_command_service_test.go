package command

import (
	"context"
	"errors"
	"testing"

	"github.com/eaglebank/user-directory/internal/repository"
	"github.com/eaglebank/user-directory/shared/cqrs"
	"github.com/eaglebank/user-directory/shared/events"
	"github.com/eaglebank/user-directory/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	stream    string
	eventType string
	data      any
}

type recordingPublisher struct {
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, stream, eventType string, data any) error {
	p.events = append(p.events, published{stream: stream, eventType: eventType, data: data})
	return p.err
}

func newTestService() (*UserCommandService, *repository.UserRepository, *recordingPublisher) {
	repo := repository.NewSeededUserRepository()
	pub := &recordingPublisher{}
	return NewUserCommandService(repo, pub), repo, pub
}

func TestCreateUserPublishesEvent(t *testing.T) {
	svc, repo, pub := newTestService()

	user, err := svc.CreateUser(context.Background(), cqrs.CreateUserCommand{Name: "Carol"})
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: 3, Name: "Carol", Age: 0}, user)

	stored, err := repo.GetByID(3)
	require.NoError(t, err)
	assert.Equal(t, *user, stored)

	require.Len(t, pub.events, 1)
	assert.Equal(t, published{
		stream:    events.UserEventsStream,
		eventType: events.UserCreated,
		data:      events.UserCreatedEvent{UserID: 3, Name: "Carol"},
	}, pub.events[0])
}

func TestUpdateUser(t *testing.T) {
	svc, _, pub := newTestService()
	age := 31

	user, err := svc.UpdateUser(context.Background(), cqrs.UpdateUserCommand{UserID: 2, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: 2, Name: "Bob", Age: 31}, user)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.UserUpdated, pub.events[0].eventType)
	assert.Equal(t, events.UserUpdatedEvent{UserID: 2, Name: "Bob", Age: 31}, pub.events[0].data)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _, pub := newTestService()
	name := "Nobody"

	_, err := svc.UpdateUser(context.Background(), cqrs.UpdateUserCommand{UserID: 9, Name: &name})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Empty(t, pub.events)
}

func TestDeleteUser(t *testing.T) {
	svc, repo, pub := newTestService()

	require.NoError(t, svc.DeleteUser(context.Background(), cqrs.DeleteUserCommand{UserID: 1}))
	_, err := repo.GetByID(1)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.UserDeletedEvent{UserID: 1}, pub.events[0].data)

	require.NoError(t, svc.DeleteUser(context.Background(), cqrs.DeleteUserCommand{UserID: 1}))
	assert.Len(t, pub.events, 1, "deleting a missing user must not publish")
	assert.Len(t, repo.List(), 1)
}

func TestPublishFailureDoesNotFailCommand(t *testing.T) {
	repo := repository.NewSeededUserRepository()
	svc := NewUserCommandService(repo, &recordingPublisher{err: errors.New("stream down")})

	user, err := svc.CreateUser(context.Background(), cqrs.CreateUserCommand{Name: "Dan", Age: 41})
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
}

func TestNilPublisherFallsBackToNop(t *testing.T) {
	svc := NewUserCommandService(repository.NewSeededUserRepository(), nil)

	_, err := svc.CreateUser(context.Background(), cqrs.CreateUserCommand{Name: "Erin"})
	assert.NoError(t, err)
}
