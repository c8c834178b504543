package models

import "time"

// Quote statuses accepted by the admin surface.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRefused  = "refused"
	QuoteStatusExpired  = "expired"
)

// ValidQuoteStatus reports whether s belongs to the fixed status enumeration.
func ValidQuoteStatus(s string) bool {
	switch s {
	case QuoteStatusPending, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRefused, QuoteStatusExpired:
		return true
	}
	return false
}

// Quote / devis models
type Quote struct {
	ID               uint           `gorm:"primaryKey"`
	Numero           string         `gorm:"size:40;unique;not null;index"` // ex: DEV-2026-A1B2C3
	Reference        string         `gorm:"size:60"`                       // référence côté demandeur
	UserID           uint           `gorm:"not null;index"`                // FK vers User (client)
	User             User           `gorm:"foreignKey:UserID"`
	Status           string         `gorm:"not null;default:'pending'"` // pending, sent, accepted, refused, expired
	DateDemande      time.Time      `gorm:"not null"`
	DateExpiration   time.Time      `gorm:"not null"` // date demande + durée de validité
	Items            []QuoteItem    `gorm:"foreignKey:QuoteID"`
	Messages         []QuoteMessage `gorm:"foreignKey:QuoteID"`
	TotalHT          float64
	TotalTVA         float64
	TotalTTC         float64
	RemiseSpeciale   float64 // remise exceptionnelle accordée par l'atelier
	Commentaire      string  // commentaire libre du client
	CommentaireAdmin string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type QuoteItem struct {
	ID             uint    `gorm:"primaryKey"`
	QuoteID        uint    `gorm:"not null;index"`
	ProductID      uint    `gorm:"not null"`
	Product        Product `gorm:"foreignKey:ProductID"`
	Quantite       int     `gorm:"not null;default:1"`
	Configuration  string  `gorm:"type:text"` // snapshot JSON de la configuration au moment de la demande
	PrixUnitaireHT float64 `gorm:"not null"`
	TotalLigneHT   float64 `gorm:"not null"`
}

// QuoteMessage : fil d'échange entre l'atelier et le client sur un devis.
// Sérialisé tel quel dans les réponses, d'où les tags json.
type QuoteMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuoteID   uint      `gorm:"not null;index" json:"quoteId"`
	Auteur    string    `gorm:"not null" json:"auteur"` // "client" ou "admin"
	Contenu   string    `gorm:"type:text;not null" json:"contenu"`
	CreatedAt time.Time `json:"createdAt"`
}
