package client

import (
	"log"
	"strings"
	"time"

	"phonemall-payments/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database named by databaseURL. A mysql:// style DSN gets
// the mysql driver; anything else is treated as a sqlite file path, which is
// what local development and tests use.
func InitDB(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		databaseURL = "phonemall.db"
	}

	var dialector gorm.Dialector
	if strings.Contains(databaseURL, "@tcp(") || strings.HasPrefix(databaseURL, "mysql://") {
		dialector = mysql.Open(strings.TrimPrefix(databaseURL, "mysql://"))
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.WebhookEvent{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
