package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemModel mirrors the 'items' table. OwnerID references users.id.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"type:varchar(100);index;not null"`
	Description *string   `gorm:"type:varchar(500)"`
	Quantity    int       `gorm:"not null"`
	Price       float64   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

// BeforeCreate assigns a time-ordered UUID when the caller has not set one.
func (m *ItemModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}
