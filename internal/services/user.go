package services

import (
	"license-manager/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUsers returns all users. Password hashes are cleared so they can never
// leak even if a serializer ignores the json tag.
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return users, nil
}
