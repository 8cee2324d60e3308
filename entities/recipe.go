package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Name        string    `gorm:"size:200" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `json:"cooking_time"` // minutes
	ImageURL    string    `json:"image_url,omitempty"`

	Author      *User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags        []*Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Timestamp
}

// RecipeIngredient is one ingredient line of a recipe. A recipe cannot
// list the same ingredient twice.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int       `json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	AddedAt  time.Time `gorm:"type:timestamp" json:"added_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type ShoppingCartEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	AddedAt  time.Time `gorm:"type:timestamp" json:"added_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
