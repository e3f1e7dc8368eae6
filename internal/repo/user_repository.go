package repo

import models "github.com/khanhvo/retail-backoffice/internal/models"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
}
