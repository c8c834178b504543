package services

import (
	"fmt"
	"math"
	"regexp"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mbodji/metallerie-backend/internal/configurator"
	"github.com/mbodji/metallerie-backend/internal/models"
	"github.com/mbodji/metallerie-backend/internal/quoterequest"
)

func setupQuoteTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Address{}, &models.ProductFamily{}, &models.Product{},
		&models.Quote{}, &models.QuoteItem{}, &models.QuoteMessage{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleSubmission() SubmissionInput {
	return SubmissionInput{
		Configuration: configurator.ExportConfig{
			Family:       "garde-corps",
			FamilyName:   "Garde-corps",
			StyleName:    "Barreaudage vertical",
			MaterialName: "Acier thermolaqué",
			ColorName:    "Noir foncé (RAL 9005)",
			Finish:       "mat",
			Dimensions:   configurator.Dimensions{Width: 400, Height: 200},
			Options:      []string{"Kit de fixation béton"},
			Price:        492,
			GeneratedAt:  time.Now(),
			Reference:    "CFG-TEST1234",
		},
		Contact: quoterequest.ContactInfo{
			TypeClient: quoterequest.ClientParticulier,
			Civilite:   "Mme",
			Prenom:     "Claire",
			Nom:        "Dupont",
			Email:      "claire.dupont@example.fr",
			Telephone:  "0698765432",
		},
		Project: quoterequest.ProjectInfo{
			Adresse:    "8 rue de la Soie",
			CodePostal: "69100",
			Ville:      "Villeurbanne",
			TypeProjet: quoterequest.ProjetNeuf,
			Delai:      quoterequest.DelaiFlexible,
		},
		RGPDAccepted: true,
	}
}

func TestTotalsSplitInvariant(t *testing.T) {
	svc := NewQuoteService(nil, 0.20, 30)
	for _, ttc := range []float64{492, 100.01, 0.01, 1234.56, 99999.99, 7} {
		ht, tva, total := svc.Totals(ttc)
		if math.Abs(ht+tva-total) > 0.0001 {
			t.Fatalf("ttc=%v: ht(%v)+tva(%v) != %v", ttc, ht, tva, total)
		}
		if math.Abs(total-ttc) > 0.005 {
			t.Fatalf("ttc rounding drifted: %v -> %v", ttc, total)
		}
	}
	ht, tva, _ := svc.Totals(492)
	if ht != 410 || tva != 82 {
		t.Fatalf("expected 410/82, got %v/%v", ht, tva)
	}
}

func TestGenerateNumberFormatAndUniqueness(t *testing.T) {
	svc := NewQuoteService(nil, 0.20, 30)
	re := regexp.MustCompile(`^DEV-\d{4}-[A-Z0-9]+$`)
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		n := svc.GenerateNumber(time.Now())
		if !re.MatchString(n) {
			t.Fatalf("bad format: %q", n)
		}
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate number after %d generations: %q", i, n)
		}
		seen[n] = struct{}{}
	}
}

func TestSubmitCreatesEverything(t *testing.T) {
	db := setupQuoteTestDB(t)
	svc := NewQuoteService(db, 0.20, 30)
	res, err := svc.Submit(sampleSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.QuoteNumber == "" || res.QuoteID == 0 {
		t.Fatalf("missing identifiers: %+v", res)
	}

	var user models.User
	if err := db.Where("email = ?", "claire.dupont@example.fr").First(&user).Error; err != nil {
		t.Fatalf("customer not created: %v", err)
	}
	if user.Verified {
		t.Fatal("new customer must start unverified")
	}
	var addr models.Address
	if err := db.Where("user_id = ? AND type = ?", user.ID, "chantier").First(&addr).Error; err != nil {
		t.Fatalf("jobsite address not created: %v", err)
	}
	if !addr.IsDefault || addr.Ville != "Villeurbanne" {
		t.Fatalf("unexpected address: %+v", addr)
	}

	var product models.Product
	if err := db.Preload("Family").Where("slug = ?", "garde-corps-sur-mesure").First(&product).Error; err != nil {
		t.Fatalf("generic product not created: %v", err)
	}
	if !product.Generique || product.Family.Slug != "garde-corps" {
		t.Fatalf("unexpected product: %+v", product)
	}

	quote, err := svc.ByID(res.QuoteID)
	if err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if quote.Status != models.QuoteStatusPending {
		t.Fatalf("expected pending, got %q", quote.Status)
	}
	if quote.TotalTTC != 492 || quote.TotalHT != 410 || quote.TotalTVA != 82 {
		t.Fatalf("totals wrong: %+v", quote)
	}
	if got := quote.DateExpiration.Sub(quote.DateDemande); got < 29*24*time.Hour || got > 31*24*time.Hour {
		t.Fatalf("expiration should be +30 days, got %v", got)
	}
	if len(quote.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(quote.Items))
	}
	item := quote.Items[0]
	if item.TotalLigneHT != quote.TotalHT {
		t.Fatalf("quote total must equal sum of line totals: %v vs %v", quote.TotalHT, item.TotalLigneHT)
	}
	if item.Configuration == "" {
		t.Fatal("configuration snapshot missing on the item")
	}
}

func TestSubmitTwiceReusesCustomerAndProduct(t *testing.T) {
	db := setupQuoteTestDB(t)
	svc := NewQuoteService(db, 0.20, 30)
	if _, err := svc.Submit(sampleSubmission()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(sampleSubmission()); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	var users, products, quotes int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.Quote{}).Count(&quotes)
	if users != 1 || products != 1 {
		t.Fatalf("expected 1 user / 1 generic product, got %d / %d", users, products)
	}
	if quotes != 2 {
		t.Fatalf("expected 2 quotes, got %d", quotes)
	}
}

func TestUpdateStatusValidatesEnumAndAudits(t *testing.T) {
	db := setupQuoteTestDB(t)
	svc := NewQuoteService(db, 0.20, 30)
	res, err := svc.Submit(sampleSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	bogus := "bogus"
	if _, err := svc.UpdateStatus(res.QuoteID, 1, &bogus, nil); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	quote, _ := svc.ByID(res.QuoteID)
	if quote.Status != models.QuoteStatusPending {
		t.Fatalf("status mutated by rejected update: %q", quote.Status)
	}

	sent := models.QuoteStatusSent
	comment := "Envoyé après visite technique"
	updated, err := svc.UpdateStatus(res.QuoteID, 7, &sent, &comment)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.QuoteStatusSent || updated.CommentaireAdmin != comment {
		t.Fatalf("update incomplete: %+v", updated)
	}
	var audit models.AuditLog
	if err := db.Where("entity_type = ? AND entity_id = ?", "Quote", res.QuoteID).First(&audit).Error; err != nil {
		t.Fatalf("audit entry missing: %v", err)
	}
	if audit.OldValue != models.QuoteStatusPending || audit.NewValue != models.QuoteStatusSent || audit.UserID != 7 {
		t.Fatalf("unexpected audit entry: %+v", audit)
	}
}

func TestByEmailUnknownCustomer(t *testing.T) {
	db := setupQuoteTestDB(t)
	svc := NewQuoteService(db, 0.20, 30)
	if _, err := svc.ByEmail("personne@example.fr"); err != ErrQuoteNotFound {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestAddMessage(t *testing.T) {
	db := setupQuoteTestDB(t)
	svc := NewQuoteService(db, 0.20, 30)
	res, err := svc.Submit(sampleSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	msg, err := svc.AddMessage(res.QuoteID, "admin", "Pouvez-vous préciser la hauteur sous plafond ?")
	if err != nil {
		t.Fatalf("add message: %v", err)
	}
	if msg.ID == 0 || msg.Auteur != "admin" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	quote, _ := svc.ByID(res.QuoteID)
	if len(quote.Messages) != 1 {
		t.Fatalf("thread not loaded: %+v", quote.Messages)
	}
	if _, err := svc.AddMessage(99999, "admin", "x"); err != ErrQuoteNotFound {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestValidateSubmission(t *testing.T) {
	in := sampleSubmission()
	if v := ValidateSubmission(in); !v.Empty() {
		t.Fatalf("valid payload rejected: %v", v)
	}

	missingEmail := sampleSubmission()
	missingEmail.Contact.Email = ""
	v := ValidateSubmission(missingEmail)
	if v["contactInfo.email"] != "required" {
		t.Fatalf("missing email not reported: %v", v)
	}

	pro := sampleSubmission()
	pro.Contact.TypeClient = quoterequest.ClientProfessionnel
	v = ValidateSubmission(pro)
	if v["contactInfo.entreprise"] != "required" || v["contactInfo.siret"] != "required" {
		t.Fatalf("professional conditional fields not enforced: %v", v)
	}

	noConsent := sampleSubmission()
	noConsent.RGPDAccepted = false
	if v := ValidateSubmission(noConsent); v["rgpdAccepted"] == "" {
		t.Fatalf("consent not enforced: %v", v)
	}

	badType := sampleSubmission()
	badType.Project.TypeProjet = "extension"
	if v := ValidateSubmission(badType); v["projectInfo.typeProjet"] != "invalid_value" {
		t.Fatalf("project type enum not enforced: %v", v)
	}
}
