package client

import (
	"license-store/internal/model"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	// TranslateError surfaces duplicate-key violations as
	// gorm.ErrDuplicatedKey, which the services rely on
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.AmazonOrder{},
		&model.StateDelay{},
		&model.LicenseKey{},
		&model.SellerAccount{},
		&model.WarrantyRegistration{},
		&model.ReplacementRequest{},
		&model.CheckoutOrder{},
		&model.CheckoutItem{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
