package command

import (
	"context"
	"log"

	"github.com/eaglebank/user-directory/shared/cqrs"
	"github.com/eaglebank/user-directory/shared/events"
	"github.com/eaglebank/user-directory/shared/models"
)

// UserWriter is the subset of the user repository the write side needs.
type UserWriter interface {
	Create(models.CreateUserParams) models.User
	Update(models.UpdateUserParams) (models.User, error)
	Delete(id int64) bool
}

// EventPublisher sends a lifecycle event to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// UserCommandService applies user mutations to the store and announces them
// on the user event stream.
type UserCommandService struct {
	repo      UserWriter
	publisher EventPublisher
}

func NewUserCommandService(repo UserWriter, publisher EventPublisher) *UserCommandService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &UserCommandService{repo: repo, publisher: publisher}
}

func (s *UserCommandService) CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	user := s.repo.Create(models.CreateUserParams{Name: cmd.Name, Age: cmd.Age})
	s.publish(ctx, events.UserCreated, events.UserCreatedEvent{
		UserID: user.ID,
		Name:   user.Name,
		Age:    user.Age,
	})
	return &user, nil
}

func (s *UserCommandService) UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error) {
	user, err := s.repo.Update(models.UpdateUserParams{ID: cmd.UserID, Name: cmd.Name, Age: cmd.Age})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.UserUpdated, events.UserUpdatedEvent{
		UserID: user.ID,
		Name:   user.Name,
		Age:    user.Age,
	})
	return &user, nil
}

// DeleteUser succeeds whether or not the user exists. An event is only
// published when a record was removed.
func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error {
	if !s.repo.Delete(cmd.UserID) {
		return nil
	}
	s.publish(ctx, events.UserDeleted, events.UserDeletedEvent{UserID: cmd.UserID})
	return nil
}

func (s *UserCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.UserEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
