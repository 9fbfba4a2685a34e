package models

import (
	"time"
)

// User is a catalog user as stored by the catalog stub.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Email     string    `gorm:"size:150;unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Products  []Product `gorm:"foreignKey:OwnerID" json:"-"`
}

// Category groups products. Names are unique.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;unique;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product belongs to one owner and one or more categories.
type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:150;unique;not null" json:"name"`
	Price       Price      `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string     `gorm:"size:500" json:"description"`
	OwnerID     uint       `gorm:"not null;index" json:"-"`
	Owner       User       `gorm:"foreignKey:OwnerID" json:"user"`
	Categories  []Category `gorm:"many2many:product_categories" json:"categories"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AllModels lists the entities the catalog stub migrates.
func AllModels() []any {
	return []any{&User{}, &Category{}, &Product{}}
}
