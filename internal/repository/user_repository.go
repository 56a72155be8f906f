package repository

import (
	"errors"
	"sort"
	"sync"

	"github.com/eaglebank/user-directory/shared/models"
)

// ErrUserNotFound is returned when no live record has the requested id.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the in-memory user store. Records are indexed by id and
// every access happens under mu, so each call is atomic with respect to the
// others.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	lastID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]models.User)}
}

// NewSeededUserRepository returns a store holding the fixed startup records.
func NewSeededUserRepository() *UserRepository {
	r := NewUserRepository()
	r.Seed([]models.User{
		{ID: 1, Name: "Alice", Age: 25},
		{ID: 2, Name: "Bob", Age: 30},
	})
	return r
}

// Seed inserts users with their given ids and advances the id counter past
// the largest one. Existing records with the same id are replaced.
func (r *UserRepository) Seed(users []models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.lastID {
			r.lastID = u.ID
		}
	}
}

// Create stores a new user under the next counter value. Ids are never
// reused, even after the highest one is deleted.
func (r *UserRepository) Create(params models.CreateUserParams) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	user := models.User{ID: r.lastID, Name: params.Name, Age: params.Age}
	r.users[user.ID] = user
	return user
}

func (r *UserRepository) GetByID(id int64) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// List returns all users ordered by id, which is also creation order.
func (r *UserRepository) List() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// Update applies a partial update and returns the resulting record.
func (r *UserRepository) Update(params models.UpdateUserParams) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[params.ID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	params.Apply(&user)
	r.users[user.ID] = user
	return user, nil
}

// Delete removes the user with the given id. It reports whether a record was
// removed; deleting a missing id is not an error.
func (r *UserRepository) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false
	}
	delete(r.users, id)
	return true
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
