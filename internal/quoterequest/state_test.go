package quoterequest

import (
	"errors"
	"testing"
	"time"

	"github.com/mbodji/metallerie-backend/internal/configurator"
	"github.com/mbodji/metallerie-backend/internal/statestore"
)

func sampleConfig() *configurator.ExportConfig {
	return &configurator.ExportConfig{
		Family:       "garde-corps",
		FamilyName:   "Garde-corps",
		StyleName:    "Barreaudage vertical",
		MaterialName: "Acier thermolaqué",
		ColorName:    "Noir foncé (RAL 9005)",
		Finish:       "mat",
		Dimensions:   configurator.Dimensions{Width: 400, Height: 200},
		Price:        492,
		GeneratedAt:  time.Now(),
	}
}

func sampleContact() ContactInfo {
	return ContactInfo{
		TypeClient: ClientParticulier,
		Civilite:   "M.",
		Prenom:     "Jean",
		Nom:        "Martin",
		Email:      "jean.martin@example.fr",
		Telephone:  "0612345678",
	}
}

func sampleProject() ProjectInfo {
	return ProjectInfo{
		Adresse:    "4 impasse des Tilleuls",
		CodePostal: "69003",
		Ville:      "Lyon",
		TypeProjet: ProjetRenovation,
		Delai:      Delai1a3Mois,
	}
}

func TestStepClamping(t *testing.T) {
	s := New()
	_ = s.SetStep(-5)
	if s.Step != 1 {
		t.Fatalf("expected clamp to 1, got %d", s.Step)
	}
	s.Contact = nil
	if err := s.SetStep(99); !errors.Is(err, ErrStepGated) {
		t.Fatalf("step 3 should be gated, got err=%v step=%d", err, s.Step)
	}
}

func TestStepThreeGating(t *testing.T) {
	s := New()
	s.SetConfiguration(sampleConfig(), "")
	if err := s.SetStep(3); !errors.Is(err, ErrStepGated) {
		t.Fatal("step 3 reachable without contact/project/consent")
	}
	s.SetContactInfo(sampleContact())
	if err := s.SetStep(3); !errors.Is(err, ErrStepGated) {
		t.Fatal("step 3 reachable without project/consent")
	}
	s.SetProjectInfo(sampleProject())
	if err := s.SetStep(3); !errors.Is(err, ErrStepGated) {
		t.Fatal("step 3 reachable without consent")
	}
	s.SetRGPDAccepted(true)
	if err := s.SetStep(3); err != nil {
		t.Fatalf("step 3 should now be reachable: %v", err)
	}
	if !s.CanSubmit() {
		t.Fatal("CanSubmit should be true with full state")
	}
}

func TestCanSubmitRequiresConfiguration(t *testing.T) {
	s := New()
	s.SetContactInfo(sampleContact())
	s.SetProjectInfo(sampleProject())
	s.SetRGPDAccepted(true)
	if s.CanSubmit() {
		t.Fatal("CanSubmit must be false without a captured configuration")
	}
	if err := s.ReadyForSubmit(); !errors.Is(err, ErrNoConfiguration) {
		t.Fatalf("expected ErrNoConfiguration, got %v", err)
	}
}

func TestSubmissionFlagsMutuallyExclusive(t *testing.T) {
	s := New()
	s.SetSubmitting(true)
	s.SetSubmissionError("erreur réseau")
	if s.Submitting || s.SubmissionError == "" || s.SubmittedNumber != "" {
		t.Fatalf("error state inconsistent: %+v", s)
	}
	s.SetSubmittedNumber("DEV-2026-ABC123")
	if s.SubmissionError != "" || s.SubmittedNumber != "DEV-2026-ABC123" {
		t.Fatalf("success should clear the error: %+v", s)
	}
	s.SetSubmissionError("refus")
	if s.SubmittedNumber != "" {
		t.Fatal("failure should clear the assigned number")
	}
}

func TestResetFormKeepsConfiguration(t *testing.T) {
	s := New()
	cfg := sampleConfig()
	s.SetConfiguration(cfg, "data:image/png;base64,xxxx")
	s.SetContactInfo(sampleContact())
	s.SetProjectInfo(sampleProject())
	s.SetRGPDAccepted(true)
	_ = s.SetStep(3)
	s.ResetForm()
	if s.Configuration != cfg || s.Screenshot == "" {
		t.Fatal("configuration/screenshot must survive ResetForm")
	}
	if s.Step != 1 || s.Contact != nil || s.Project != nil || s.RGPDAccepted {
		t.Fatalf("wizard not cleared: %+v", s)
	}
	s.Reset()
	if s.Configuration != nil || s.Screenshot != "" {
		t.Fatal("full Reset must clear everything")
	}
}

func TestPersistRestoreSkipsSubmissionFlags(t *testing.T) {
	store := statestore.NewMemoryStore()
	s := New()
	s.SetConfiguration(sampleConfig(), "")
	s.SetContactInfo(sampleContact())
	s.SetProjectInfo(sampleProject())
	s.SetRGPDAccepted(true)
	s.SetSubmitting(true)
	s.SubmissionError = "transient"
	if err := s.Persist(store, "sess-1"); err != nil {
		t.Fatalf("persist: %v", err)
	}
	got, err := Restore(store, "sess-1")
	if err != nil || got == nil {
		t.Fatalf("restore: %v %v", got, err)
	}
	if got.Configuration == nil || got.Contact == nil || got.Project == nil || !got.RGPDAccepted {
		t.Fatalf("durable fields lost: %+v", got)
	}
	if got.Submitting || got.SubmissionError != "" || got.SubmittedNumber != "" {
		t.Fatalf("submission flags should not survive reload: %+v", got)
	}
}

func TestRestoreReclampsStep(t *testing.T) {
	store := statestore.NewMemoryStore()
	// blob bricolé : step 3 sans consentement
	blob := []byte(`{"configuration":null,"step":3,"contact":null,"project":null,"rgpdAccepted":false}`)
	if err := store.Save("quote-request", "sess-x", blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Restore(store, "sess-x")
	if err != nil || got == nil {
		t.Fatalf("restore: %v %v", got, err)
	}
	if got.Step == 3 {
		t.Fatal("hand-edited blob must not bypass the step-3 gate")
	}
}
