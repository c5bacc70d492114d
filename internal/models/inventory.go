package models

import (
	"time"
)

// Computer is a machine in a room. The (room_number, computer_name) pair is
// used as a lookup key by the room-based license operations but is not
// unique at the storage level.
type Computer struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RoomNumber   string    `json:"room_number" gorm:"type:varchar(50);not null;index"`
	ComputerName string    `json:"computer_name" gorm:"type:varchar(255);not null"`
	Licenses     []License `json:"licenses,omitempty" gorm:"foreignKey:ComputerID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// License is a time-bounded software entitlement assigned to one computer.
// Dates are stored as YYYY-MM-DD strings so lexicographic comparison in SQL
// matches calendar order.
type License struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ComputerID   uint      `json:"computer_id" gorm:"not null;index"`
	Software     string    `json:"software" gorm:"type:varchar(255);not null"`
	LicenseStart string    `json:"license_start" gorm:"type:varchar(10);not null"`
	LicenseEnd   string    `json:"license_end" gorm:"type:varchar(10);not null"`
	Budget       *float64  `json:"budget"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
