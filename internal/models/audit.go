package models

import "time"

// Audit logging for admin actions on quotes
type AuditLog struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      // qui a fait la modification
	EntityType string    // ex: "Quote"
	EntityID   uint      // ID de l'entité modifiée
	Action     string    // ex: "status_change", "comment"
	Field      string    // champ modifié (optionnel)
	OldValue   string    // ancienne valeur (optionnel)
	NewValue   string    // nouvelle valeur (optionnel)
	CreatedAt  time.Time // quand
}
