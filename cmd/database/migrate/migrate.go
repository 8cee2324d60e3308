package migration

import (
	"Recipebook-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []interface{}{
		&entities.User{},
		&entities.Ingredient{},
		&entities.Tag{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.Favorite{},
		&entities.ShoppingCartEntry{},
		&entities.Subscription{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating %T: %v", model, err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
