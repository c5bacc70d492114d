// Package seed fills the database with sample users, computers and
// licenses for demos and manual testing.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"license-manager/internal/config"
	"license-manager/internal/services"

	"gorm.io/gorm"
)

var products = []string{"MS Office 2021", "AutoCAD 2024", "Photoshop 2024", "VS Code", "PyCharm Pro"}

// Run inserts 20 users, 20 computers spread over rooms 100-110 and 20
// one-year licenses. Already-existing users are skipped so reruns work.
func Run(db *gorm.DB, cfg *config.Config) error {
	authService := services.NewAuthService(db, cfg)
	computerService := services.NewComputerService(db)
	licenseService := services.NewLicenseService(db)

	for i := 1; i <= 20; i++ {
		_, err := authService.Register(fmt.Sprintf("user%d", i), fmt.Sprintf("pass%d", i))
		if err != nil && !errors.Is(err, services.ErrUserExists) {
			return fmt.Errorf("failed to seed users: %w", err)
		}
	}

	var computerIDs []uint
	for i := 1; i <= 20; i++ {
		room := strconv.Itoa(100 + rand.Intn(11))
		computer, err := computerService.CreateComputer(room, fmt.Sprintf("PC-%02d", i))
		if err != nil {
			return fmt.Errorf("failed to seed computers: %w", err)
		}
		computerIDs = append(computerIDs, computer.ID)
	}

	for i := 0; i < 20; i++ {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rand.Intn(366))
		end := start.AddDate(0, 0, 365)

		var budget *float64
		if rand.Intn(2) == 1 {
			amount := float64(10000 + rand.Intn(20001))
			budget = &amount
		}

		_, err := licenseService.CreateLicense(
			computerIDs[rand.Intn(len(computerIDs))],
			products[rand.Intn(len(products))],
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
			budget,
		)
		if err != nil {
			return fmt.Errorf("failed to seed licenses: %w", err)
		}
	}

	return nil
}
