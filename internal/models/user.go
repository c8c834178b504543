package models

import "time"

// Customer & admin accounts
type User struct {
	ID         uint   `gorm:"primaryKey"`
	Email      string `gorm:"unique;not null;index"`
	Password   string // hashé; vide pour un client créé via demande de devis
	Civilite   string // M. / Mme
	Nom        string `gorm:"index"`
	Prenom     string `gorm:"index"`
	Telephone  string
	TypeClient string `gorm:"not null;default:'particulier'"` // particulier, professionnel
	Entreprise string // raison sociale (professionnel uniquement)
	SIRET      string    `gorm:"index"` // professionnel uniquement
	IsAdmin    bool      `gorm:"not null;default:false"`
	Verified   bool      `gorm:"not null;default:false"` // compte non validé tant que le client n'a pas confirmé
	Addresses  []Address `gorm:"foreignKey:UserID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
