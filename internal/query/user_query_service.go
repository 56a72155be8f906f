package query

import (
	"github.com/eaglebank/user-directory/shared/cqrs"
	"github.com/eaglebank/user-directory/shared/models"
)

// UserReader is the subset of the user repository the read side needs.
type UserReader interface {
	GetByID(id int64) (models.User, error)
	List() []models.User
}

// UserQueryService answers reads straight from the in-memory store.
type UserQueryService struct {
	repo UserReader
}

func NewUserQueryService(repo UserReader) *UserQueryService {
	return &UserQueryService{repo: repo}
}

func (s *UserQueryService) GetUser(q cqrs.GetUserQuery) (*models.User, error) {
	user, err := s.repo.GetByID(q.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserQueryService) ListUsers(cqrs.ListUsersQuery) ([]models.User, error) {
	return s.repo.List(), nil
}
