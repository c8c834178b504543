package models

import (
	"time"

	"gorm.io/gorm"
)

// Catalog models. Les produits "sur mesure" sont créés à la volée lors de la
// première demande de devis pour une famille donnée et servent d'ancre aux
// lignes de devis; la configuration réelle vit dans le snapshot JSON de la
// ligne.
type ProductFamily struct {
	ID          uint   `gorm:"primaryKey"`
	Slug        string `gorm:"size:80;unique;not null;index"`
	Nom         string `gorm:"not null"` // ex: Garde-corps, Escalier, Portail
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID        uint           `gorm:"primaryKey"`
	FamilyID  uint           `gorm:"not null;index"` // FK vers ProductFamily
	Family    ProductFamily  `gorm:"foreignKey:FamilyID"`
	Slug      string         `gorm:"size:120;unique;not null;index"`
	Nom       string         `gorm:"not null"`
	PrixHT    float64        `gorm:"not null"`               // prix unitaire HT
	Generique bool           `gorm:"not null;default:false"` // produit "<famille> sur mesure"
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
