package models

import "time"

// Address model
type Address struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"` // FK vers User
	Ligne1     string `gorm:"not null"`       // Rue, numéro, etc.
	Ligne2     string // Complément
	CodePostal string `gorm:"not null"`
	Ville      string `gorm:"not null"`
	Pays       string `gorm:"not null;default:'France'"`
	Type       string // ex: "principale", "chantier", "facturation"
	IsDefault  bool   `gorm:"not null;default:false"` // une seule adresse par défaut par client
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
