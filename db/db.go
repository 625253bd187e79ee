package db

import (
	"fmt"
	"os"

	"library-api/models"
	"library-api/password"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(log *zap.Logger) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// TranslateError so uniqueness violations surface as gorm.ErrDuplicatedKey
	// instead of driver-specific codes.
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := Migrate(conn); err != nil {
		log.Fatal("failed to migrate models", zap.Error(err))
	}
	log.Info("database connected")
	return conn
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Book{}, &models.User{}, &models.Loan{}); err != nil {
		return err
	}

	// The pending-loan checks on book/user deletion scan by reference + status.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_pending_book
	  ON %s (book_id)
	  WHERE status = 'Pending';
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_pending_user
	  ON %s (user_id)
	  WHERE status = 'Pending';
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	return nil
}

// Seed inserts a demo administrator and a starter catalog. Existing rows are
// left alone, so it is safe to run on every boot with SEED_DB=true.
func Seed(db *gorm.DB, hasher *password.Hasher, log *zap.Logger) error {
	var n int64
	if err := db.Model(&models.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := hasher.Hash(password.DefaultPassword())
	if err != nil {
		return err
	}
	admin := models.User{
		FirstName:    "Default",
		LastName:     "Admin",
		Email:        "admin@library.local",
		UserType:     models.TypeAdministrator,
		PasswordHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	books := []models.Book{
		{Title: "The Go Programming Language", Author: "Donovan, Kernighan", Publisher: "Addison-Wesley", ISBN: "9780134190440", Year: 2015, Category: "Programming", Stock: 3},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Publisher: "O'Reilly", ISBN: "9781449373320", Year: 2017, Category: "Databases", Stock: 2},
		{Title: "The Name of the Rose", Author: "Umberto Eco", Publisher: "Harcourt", ISBN: "9780156001311", Year: 1983, Category: "Fiction", Stock: 1},
	}
	if err := db.Create(&books).Error; err != nil {
		return err
	}

	log.Info("seeded demo data",
		zap.String("admin", admin.Email),
		zap.Int("books", len(books)))
	return nil
}
