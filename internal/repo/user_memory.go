package repo

import (
	"sync"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1}
}

func (r *MemoryUserRepository) CreateUser(user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return user, nil
}

func (r *MemoryUserRepository) GetUserByUsername(username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}
