package models

import "time"

// BaseModel contains common fields for all database models
type BaseModel struct {
	ID        string    `json:"id" db:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
