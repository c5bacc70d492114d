package services

import (
	"errors"

	"license-manager/internal/models"

	"gorm.io/gorm"
)

var ErrComputerNotFound = errors.New("computer not found")

type ComputerService struct {
	db *gorm.DB
}

func NewComputerService(db *gorm.DB) *ComputerService {
	return &ComputerService{db: db}
}

// CreateComputer registers a computer in a room.
func (s *ComputerService) CreateComputer(roomNumber, computerName string) (*models.Computer, error) {
	computer := &models.Computer{
		RoomNumber:   roomNumber,
		ComputerName: computerName,
	}

	if err := s.db.Create(computer).Error; err != nil {
		return nil, err
	}

	return computer, nil
}

// GetComputers returns all computers.
func (s *ComputerService) GetComputers() ([]models.Computer, error) {
	var computers []models.Computer
	if err := s.db.Find(&computers).Error; err != nil {
		return nil, err
	}
	return computers, nil
}

// Exists reports whether a computer with the given id is registered.
func (s *ComputerService) Exists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Computer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteComputer removes a computer and every license assigned to it. The
// cascade runs in one transaction so it behaves the same on sqlite and
// mysql regardless of foreign-key settings. Deleting a missing id is not
// an error.
func (s *ComputerService) DeleteComputer(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("computer_id = ?", id).Delete(&models.License{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Computer{}, id).Error
	})
}
