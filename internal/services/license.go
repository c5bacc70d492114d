package services

import (
	"errors"
	"time"

	"license-manager/internal/models"

	"gorm.io/gorm"
)

var ErrLicenseNotFound = errors.New("license not found")

const dateLayout = "2006-01-02"

// expiringWindowDays is how far ahead a license end date may lie for the
// license to count as expiring.
const expiringWindowDays = 60

// LicensePatch enumerates the fields a partial license update may change.
// Nil fields are left untouched.
type LicensePatch struct {
	ComputerID   *uint
	Software     *string
	LicenseStart *string
	LicenseEnd   *string
	Budget       *float64
}

// SearchResult is a license row joined with its computer's location.
type SearchResult struct {
	ID           uint     `json:"id"`
	RoomNumber   string   `json:"room_number"`
	ComputerName string   `json:"computer_name"`
	Software     string   `json:"software"`
	LicenseStart string   `json:"license_start"`
	LicenseEnd   string   `json:"license_end"`
	Budget       *float64 `json:"budget"`
}

// ComputerLicense is a license projected for a single known computer.
type ComputerLicense struct {
	ID           uint     `json:"id"`
	Software     string   `json:"software"`
	LicenseStart string   `json:"license_start"`
	LicenseEnd   string   `json:"license_end"`
	Budget       *float64 `json:"budget"`
}

// RoomLicense is a license projected across all computers of one room.
type RoomLicense struct {
	ComputerName string   `json:"computer_name"`
	Software     string   `json:"software"`
	LicenseStart string   `json:"license_start"`
	LicenseEnd   string   `json:"license_end"`
	Budget       *float64 `json:"budget"`
}

// StatusCounts aggregates licenses by status relative to today. A license
// ending exactly today is active, not expiring.
type StatusCounts struct {
	Active   int64 `json:"active"`
	Expiring int64 `json:"expiring"`
	Expired  int64 `json:"expired"`
}

type LicenseService struct {
	db *gorm.DB

	// now is swapped out in tests to pin "today"
	now func() time.Time
}

func NewLicenseService(db *gorm.DB) *LicenseService {
	return &LicenseService{db: db, now: time.Now}
}

// CreateLicense assigns a license to a computer. Date validity and the
// existence of the computer are the caller's responsibility.
func (s *LicenseService) CreateLicense(computerID uint, software, start, end string, budget *float64) (*models.License, error) {
	license := &models.License{
		ComputerID:   computerID,
		Software:     software,
		LicenseStart: start,
		LicenseEnd:   end,
		Budget:       budget,
	}

	if err := s.db.Create(license).Error; err != nil {
		return nil, err
	}

	return license, nil
}

// GetLicenses returns all licenses, or only those of one computer when
// computerID is non-zero.
func (s *LicenseService) GetLicenses(computerID uint) ([]models.License, error) {
	q := s.db
	if computerID != 0 {
		q = q.Where("computer_id = ?", computerID)
	}

	var licenses []models.License
	if err := q.Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}

// UpdateLicense applies the non-nil fields of the patch. An empty patch
// executes no statement at all.
func (s *LicenseService) UpdateLicense(id uint, patch LicensePatch) error {
	updates := map[string]interface{}{}
	if patch.ComputerID != nil {
		updates["computer_id"] = *patch.ComputerID
	}
	if patch.Software != nil {
		updates["software"] = *patch.Software
	}
	if patch.LicenseStart != nil {
		updates["license_start"] = *patch.LicenseStart
	}
	if patch.LicenseEnd != nil {
		updates["license_end"] = *patch.LicenseEnd
	}
	if patch.Budget != nil {
		updates["budget"] = *patch.Budget
	}

	if len(updates) == 0 {
		return nil
	}

	return s.db.Model(&models.License{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteLicense removes a license. Deleting a missing id is not an error.
func (s *LicenseService) DeleteLicense(id uint) error {
	return s.db.Delete(&models.License{}, id).Error
}

// Search returns licenses joined with their computers, filtered by the
// given criteria. Every filter is optional and they compose conjunctively.
// Result order is unspecified.
func (s *LicenseService) Search(software, room string, activeOnly bool) ([]SearchResult, error) {
	q := s.db.Table("licenses").
		Select("licenses.id, computers.room_number, computers.computer_name, licenses.software, licenses.license_start, licenses.license_end, licenses.budget").
		Joins("JOIN computers ON licenses.computer_id = computers.id")

	if software != "" {
		q = q.Where("licenses.software LIKE ?", "%"+software+"%")
	}
	if room != "" {
		q = q.Where("computers.room_number = ?", room)
	}
	if activeOnly {
		today := s.now().Format(dateLayout)
		q = q.Where("licenses.license_start <= ? AND licenses.license_end >= ?", today, today)
	}

	results := []SearchResult{}
	if err := q.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CountByStatus counts licenses per status. Today is captured once so all
// three counts agree on the boundary even across midnight.
func (s *LicenseService) CountByStatus() (StatusCounts, error) {
	t := s.now()
	today := t.Format(dateLayout)
	cutoff := t.AddDate(0, 0, expiringWindowDays).Format(dateLayout)

	var counts StatusCounts

	err := s.db.Model(&models.License{}).
		Where("license_start <= ? AND license_end >= ?", today, today).
		Count(&counts.Active).Error
	if err != nil {
		return counts, err
	}

	err = s.db.Model(&models.License{}).
		Where("license_end > ? AND license_end <= ?", today, cutoff).
		Count(&counts.Expiring).Error
	if err != nil {
		return counts, err
	}

	err = s.db.Model(&models.License{}).
		Where("license_end < ?", today).
		Count(&counts.Expired).Error
	if err != nil {
		return counts, err
	}

	return counts, nil
}

// ForComputer returns the licenses of the computer identified by an exact
// (room, name) match. An unknown pair yields an empty slice, not an error.
func (s *LicenseService) ForComputer(roomNumber, computerName string) ([]ComputerLicense, error) {
	results := []ComputerLicense{}
	err := s.db.Table("licenses").
		Select("licenses.id, licenses.software, licenses.license_start, licenses.license_end, licenses.budget").
		Joins("JOIN computers ON licenses.computer_id = computers.id").
		Where("computers.room_number = ? AND computers.computer_name = ?", roomNumber, computerName).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ForRoom returns the licenses of every computer in a room.
func (s *LicenseService) ForRoom(roomNumber string) ([]RoomLicense, error) {
	results := []RoomLicense{}
	err := s.db.Table("licenses").
		Select("computers.computer_name, licenses.software, licenses.license_start, licenses.license_end, licenses.budget").
		Joins("JOIN computers ON licenses.computer_id = computers.id").
		Where("computers.room_number = ?", roomNumber).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CreateByRoom assigns a license to the computer identified by (room, name)
// without the caller knowing its id. If the pair matches more than one
// computer the lowest id wins.
func (s *LicenseService) CreateByRoom(roomNumber, computerName, software, start, end string, budget *float64) (*models.License, error) {
	var computer models.Computer
	err := s.db.Where("room_number = ? AND computer_name = ?", roomNumber, computerName).
		Order("id").First(&computer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComputerNotFound
		}
		return nil, err
	}

	return s.CreateLicense(computer.ID, software, start, end, budget)
}

// UpdateByDetails finds the license identified by (room, name, software)
// and overwrites its date range. Budget is untouched. If the triple matches
// more than one license the lowest id wins.
func (s *LicenseService) UpdateByDetails(roomNumber, computerName, software, newStart, newEnd string) error {
	var license models.License
	err := s.db.Model(&models.License{}).
		Select("licenses.*").
		Joins("JOIN computers ON computers.id = licenses.computer_id").
		Where("computers.room_number = ? AND computers.computer_name = ? AND licenses.software = ?",
			roomNumber, computerName, software).
		Order("licenses.id").First(&license).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLicenseNotFound
		}
		return err
	}

	return s.db.Model(&license).Updates(map[string]interface{}{
		"license_start": newStart,
		"license_end":   newEnd,
	}).Error
}

// Rooms returns the distinct room numbers that have computers, ascending.
func (s *LicenseService) Rooms() ([]string, error) {
	rooms := []string{}
	err := s.db.Model(&models.Computer{}).
		Distinct().
		Order("room_number").
		Pluck("room_number", &rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
