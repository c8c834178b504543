package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mbodji/metallerie-backend/internal/configurator"
	"github.com/mbodji/metallerie-backend/internal/models"
	"github.com/mbodji/metallerie-backend/internal/quoterequest"
)

// SubmissionInput is the full quote-request payload as posted by the final
// wizard step.
type SubmissionInput struct {
	Configuration configurator.ExportConfig `json:"configuration"`
	Contact       quoterequest.ContactInfo  `json:"contactInfo"`
	Project       quoterequest.ProjectInfo  `json:"projectInfo"`
	Screenshot    string                    `json:"screenshotDataUrl,omitempty"`
	RGPDAccepted  bool                      `json:"rgpdAccepted"`
}

// SubmissionResult carries the identifiers returned to the client.
type SubmissionResult struct {
	QuoteID     uint
	QuoteNumber string
}

// Notifier dispatches best-effort notifications after a quote is persisted.
// Failures are logged, never surfaced to the submitter.
type Notifier interface {
	QuoteCreated(quote *models.Quote, pdfData []byte)
}

// PDFRenderer renders the one-page quote summary.
type PDFRenderer interface {
	QuotePDF(quote *models.Quote) ([]byte, error)
}

// QuoteService orchestrates the submission pipeline: totals, numbering,
// customer and generic-product resolution, persistence, then deferred
// PDF + notification dispatch.
type QuoteService struct {
	DB           *gorm.DB
	TVARate      float64 // ex: 0.20
	ValidityDays int
	Notifier     Notifier    // optionnel
	PDF          PDFRenderer // optionnel

	now func() time.Time // injectable pour les tests
}

func NewQuoteService(db *gorm.DB, tvaRate float64, validityDays int) *QuoteService {
	if tvaRate <= 0 {
		tvaRate = 0.20
	}
	if validityDays <= 0 {
		validityDays = 30
	}
	return &QuoteService{DB: db, TVARate: tvaRate, ValidityDays: validityDays, now: time.Now}
}

// Totals splits a TTC amount into HT and TVA at the service's rate, rounded
// to the cent. HT + TVA always reconstructs TTC exactly: TVA is derived by
// subtraction from the rounded HT, never rounded independently.
func (s *QuoteService) Totals(totalTTC float64) (ht, tva, ttc float64) {
	ttc = roundCents(totalTTC)
	ht = roundCents(ttc / (1 + s.TVARate))
	tva = roundCents(ttc - ht)
	return ht, tva, ttc
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }

// configSnapshot is the JSON blob frozen on the QuoteItem: everything needed
// to rebuild the quote document without re-running the configurator.
type configSnapshot struct {
	Configuration configurator.ExportConfig `json:"configuration"`
	Project       quoterequest.ProjectInfo  `json:"projectInfo"`
	Screenshot    string                    `json:"screenshotDataUrl,omitempty"`
}

// Submit persists a validated quote request. Customer, jobsite address,
// family, generic product, quote and item are written in one transaction;
// customer and product resolution use insert-or-ignore upserts on their
// unique keys so concurrent submissions with the same email cannot race a
// check-then-act window.
func (s *QuoteService) Submit(in SubmissionInput) (*SubmissionResult, error) {
	now := s.now()
	ht, tva, ttc := s.Totals(in.Configuration.Price)
	numero := s.GenerateNumber(now)

	snapshot, err := json.Marshal(configSnapshot{Configuration: in.Configuration, Project: in.Project, Screenshot: in.Screenshot})
	if err != nil {
		return nil, fmt.Errorf("snapshot configuration: %w", err)
	}

	var quote models.Quote
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := resolveCustomer(tx, in.Contact, in.Project)
		if err != nil {
			return err
		}
		product, err := resolveGenericProduct(tx, in.Configuration, ht)
		if err != nil {
			return err
		}
		quote = models.Quote{
			Numero:         numero,
			Reference:      in.Configuration.Reference,
			UserID:         user.ID,
			Status:         models.QuoteStatusPending,
			DateDemande:    now,
			DateExpiration: now.AddDate(0, 0, s.ValidityDays),
			TotalHT:        ht,
			TotalTVA:       tva,
			TotalTTC:       ttc,
			Commentaire:    in.Project.Commentaire,
		}
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		item := models.QuoteItem{
			QuoteID:        quote.ID,
			ProductID:      product.ID,
			Quantite:       1,
			Configuration:  string(snapshot),
			PrixUnitaireHT: ht,
			TotalLigneHT:   ht,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	// PDF et mails : différés, jamais bloquants pour la réponse.
	go s.dispatch(quote.ID)

	return &SubmissionResult{QuoteID: quote.ID, QuoteNumber: numero}, nil
}

// resolveCustomer finds or creates the customer by email. New customers are
// created unverified, seeded from the contact form, with a default jobsite
// address built from the project info.
func resolveCustomer(tx *gorm.DB, contact quoterequest.ContactInfo, project quoterequest.ProjectInfo) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(contact.Email))
	user := models.User{
		Email:      email,
		Civilite:   contact.Civilite,
		Nom:        contact.Nom,
		Prenom:     contact.Prenom,
		Telephone:  contact.Telephone,
		TypeClient: contact.TypeClient,
		Entreprise: contact.Entreprise,
		SIRET:      contact.SIRET,
	}
	res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&user)
	if res.Error != nil {
		return nil, res.Error
	}
	created := res.RowsAffected > 0
	if !created {
		// conflit: le client existe déjà, on le recharge
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return nil, err
		}
	}
	if created && project.Adresse != "" {
		addr := models.Address{
			UserID:     user.ID,
			Ligne1:     project.Adresse,
			CodePostal: project.CodePostal,
			Ville:      project.Ville,
			Pays:       "France",
			Type:       "chantier",
			IsDefault:  true,
		}
		if err := tx.Create(&addr).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// resolveGenericProduct finds or creates the "<famille> sur mesure" product
// anchoring the quote line. The first quote ever submitted for a family
// permanently creates its family and generic product rows; the real
// configuration lives in the item's JSON snapshot.
func resolveGenericProduct(tx *gorm.DB, cfg configurator.ExportConfig, priceHT float64) (*models.Product, error) {
	familySlug := slugify(cfg.Family)
	family := models.ProductFamily{Slug: familySlug, Nom: cfg.FamilyName}
	res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&family)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("slug = ?", familySlug).First(&family).Error; err != nil {
			return nil, err
		}
	}
	productSlug := familySlug + "-sur-mesure"
	product := models.Product{
		FamilyID:  family.ID,
		Slug:      productSlug,
		Nom:       cfg.FamilyName + " sur mesure",
		PrixHT:    priceHT,
		Generique: true,
	}
	res = tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&product)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("slug = ?", productSlug).First(&product).Error; err != nil {
			return nil, err
		}
	}
	return &product, nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// dispatch runs the deferred obligations: PDF rendering then notification.
// Both are best-effort; a failure is logged and dropped.
func (s *QuoteService) dispatch(quoteID uint) {
	if s.Notifier == nil {
		return
	}
	var quote models.Quote
	if err := s.DB.Preload("Items.Product").Preload("User").First(&quote, quoteID).Error; err != nil {
		log.Printf("dispatch devis %d: rechargement impossible: %v", quoteID, err)
		return
	}
	var pdfData []byte
	if s.PDF != nil {
		data, err := s.PDF.QuotePDF(&quote)
		if err != nil {
			log.Printf("dispatch devis %s: génération PDF: %v", quote.Numero, err)
		} else {
			pdfData = data
		}
	}
	s.Notifier.QuoteCreated(&quote, pdfData)
}

var ErrQuoteNotFound = errors.New("devis introuvable")

// ByEmail returns the quotes of the customer identified by email, newest
// first. ErrQuoteNotFound when the email matches no customer.
func (s *QuoteService) ByEmail(email string) ([]models.Quote, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	var quotes []models.Quote
	if err := s.DB.Preload("Items.Product.Family").Where("user_id = ?", user.ID).Order("id desc").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// ByID loads one quote with items, messages and customer.
func (s *QuoteService) ByID(id uint) (*models.Quote, error) {
	var quote models.Quote
	err := s.DB.Preload("Items.Product.Family").Preload("Messages").Preload("User").First(&quote, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

var ErrInvalidStatus = errors.New("statut de devis invalide")

// UpdateStatus mutates the status and/or admin comment of an existing quote
// and records the change in the audit log. Status values outside the fixed
// enumeration are rejected before any write.
func (s *QuoteService) UpdateStatus(id uint, adminID uint, status *string, adminComment *string) (*models.Quote, error) {
	if status != nil && !models.ValidQuoteStatus(*status) {
		return nil, ErrInvalidStatus
	}
	quote, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if status != nil && *status != quote.Status {
			audit := models.AuditLog{
				UserID:     adminID,
				EntityType: "Quote",
				EntityID:   quote.ID,
				Action:     "status_change",
				Field:      "status",
				OldValue:   quote.Status,
				NewValue:   *status,
			}
			if err := tx.Create(&audit).Error; err != nil {
				return err
			}
			quote.Status = *status
		}
		if adminComment != nil {
			quote.CommentaireAdmin = *adminComment
		}
		return tx.Save(quote).Error
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// AddMessage appends to the quote's exchange thread.
func (s *QuoteService) AddMessage(id uint, auteur, contenu string) (*models.QuoteMessage, error) {
	if _, err := s.ByID(id); err != nil {
		return nil, err
	}
	msg := models.QuoteMessage{QuoteID: id, Auteur: auteur, Contenu: contenu}
	if err := s.DB.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
