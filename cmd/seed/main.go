package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"doulabook/internal/database"
	"doulabook/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "doulabook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reminders")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM favourites")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM availability_windows")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@doulabook.app",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@doulabook.app / admin123")

	mothers := []domain.User{}
	motherNames := []string{"Anna", "Lena", "Sophie"}
	for i, name := range motherNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("mother123"), bcrypt.DefaultCost)
		m := domain.User{
			Email:        fmt.Sprintf("%s@example.com", name),
			PasswordHash: string(hash),
			Role:         domain.RoleMother,
			Name:         name,
			Location:     "Berlin",
			Phone:        fmt.Sprintf("+49 151 1234 56%02d", i+10),
		}
		db.Create(&m)
		mothers = append(mothers, m)
	}
	log.Printf("Created %d mothers (password: mother123)", len(mothers))

	years := []int{4, 9, 12}
	bundle := []float64{320, 450, 540}
	doulas := []domain.User{}
	doulaSeeds := []struct {
		Name     string
		Location string
		Price    float64
		Verified bool
	}{
		{"Maria Keller", "Berlin", 85, true},
		{"Julia Brandt", "Hamburg", 110, true},
		{"Nadia Fischer", "Munich", 95, false},
	}
	for i, seed := range doulaSeeds {
		hash, _ := bcrypt.GenerateFromPassword([]byte("doula123"), bcrypt.DefaultCost)
		pb := bundle[i]
		ye := years[i]
		d := domain.User{
			Email:           fmt.Sprintf("doula%d@example.com", i+1),
			PasswordHash:    string(hash),
			Role:            domain.RoleDoula,
			Name:            seed.Name,
			Location:        seed.Location,
			Price:           seed.Price,
			PriceBundle:     &pb,
			PriceCaption:    "per visit",
			BundleCaption:   "birth package",
			Verified:        seed.Verified,
			Qualifications:  "Certified birth doula",
			Services:        "Birth support, postpartum visits",
			YearsExperience: &ye,
		}
		db.Create(&d)
		doulas = append(doulas, d)
	}
	log.Printf("Created %d doulas (password: doula123)", len(doulas))

	log.Println("Creating availability windows...")
	for _, d := range doulas {
		// Mon-Fri 09:00-17:00, Saturday mornings
		for day := 0; day < 5; day++ {
			db.Create(&domain.AvailabilityWindow{
				DoulaID:   d.ID,
				DayOfWeek: day,
				StartTime: "09:00",
				EndTime:   "17:00",
				Active:    true,
			})
		}
		db.Create(&domain.AvailabilityWindow{
			DoulaID:   d.ID,
			DayOfWeek: 5,
			StartTime: "10:00",
			EndTime:   "14:00",
			Active:    true,
		})
	}

	log.Println("Seed complete")
}
