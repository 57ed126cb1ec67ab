package initializers

import (
	"log"

	"github.com/gokulanand247/ecommerce/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Seller{},
		&models.Admin{},
		&models.Product{},
		&models.CartItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Deal{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
		&models.Review{},
		&models.Banner{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Database migration failed: ", err)
	}
	log.Println("Database synced successfully.")
}
