package quoterequest

import (
	"encoding/json"
	"errors"

	"github.com/mbodji/metallerie-backend/internal/configurator"
	"github.com/mbodji/metallerie-backend/internal/statestore"
)

const storeNamespace = "quote-request"

// Client types.
const (
	ClientParticulier   = "particulier"
	ClientProfessionnel = "professionnel"
)

// Project types and timelines offered by the step-2 form.
const (
	ProjetNeuf         = "neuf"
	ProjetRenovation   = "renovation"
	ProjetRemplacement = "remplacement"

	DelaiUrgent   = "urgent"
	Delai1a3Mois  = "1-3 mois"
	Delai3a6Mois  = "3-6 mois"
	DelaiFlexible = "flexible"
)

// ContactInfo is the step-1 payload. Entreprise and SIRET are only required
// for professional clients; the two client types are mutually exclusive.
type ContactInfo struct {
	TypeClient string `json:"typeClient"` // particulier, professionnel
	Civilite   string `json:"civilite"`
	Prenom     string `json:"prenom"`
	Nom        string `json:"nom"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
	Entreprise string `json:"entreprise,omitempty"`
	SIRET      string `json:"siret,omitempty"`
}

// ProjectInfo is the step-2 payload: the jobsite and context of the project.
type ProjectInfo struct {
	Adresse       string `json:"adresse"`
	CodePostal    string `json:"codePostal"`
	Ville         string `json:"ville"`
	TypeProjet    string `json:"typeProjet"` // neuf, renovation, remplacement
	Delai         string `json:"delai"`      // urgent, 1-3 mois, 3-6 mois, flexible
	PoseSouhaitee bool   `json:"poseSouhaitee"`
	Commentaire   string `json:"commentaire,omitempty"`
}

var (
	ErrNoConfiguration = errors.New("aucune configuration capturée")
	ErrStepGated       = errors.New("étape 3 inaccessible: contact, projet et consentement requis")
)

// State drives the 3-step quote request wizard. The configuration snapshot is
// captured once and never mutated by later steps; contact/project setters use
// overwrite semantics. Submission flags are transient and mutually exclusive:
// a success clears the error, a failure clears the assigned number.
type State struct {
	Configuration *configurator.ExportConfig `json:"configuration"`
	Screenshot    string                     `json:"screenshot,omitempty"` // data URL du rendu 3D
	Step          int                        `json:"step"`
	Contact       *ContactInfo               `json:"contact"`
	Project       *ProjectInfo               `json:"project"`
	RGPDAccepted  bool                       `json:"rgpdAccepted"`

	Submitting      bool   `json:"-"`
	SubmissionError string `json:"-"`
	SubmittedNumber string `json:"-"`
}

func New() *State { return &State{Step: 1} }

// SetConfiguration captures the frozen snapshot plus an optional rendered
// preview. Called once when transitioning from the configurator; a second
// call replaces the snapshot wholesale (new configuration, fresh wizard).
func (s *State) SetConfiguration(cfg *configurator.ExportConfig, screenshot string) {
	s.Configuration = cfg
	s.Screenshot = screenshot
}

// SetStep clamps to [1,3]. Step 3 is the confirmation step and stays gated
// until contact, project and consent are all present.
func (s *State) SetStep(n int) error {
	if n < 1 {
		n = 1
	}
	if n > 3 {
		n = 3
	}
	if n == 3 && !s.stepThreeReady() {
		return ErrStepGated
	}
	s.Step = n
	return nil
}

func (s *State) NextStep() error { return s.SetStep(s.Step + 1) }

func (s *State) PrevStep() { _ = s.SetStep(s.Step - 1) }

func (s *State) stepThreeReady() bool {
	return s.Contact != nil && s.Project != nil && s.RGPDAccepted
}

// SetContactInfo overwrites step-1 data (last write wins, no merge).
func (s *State) SetContactInfo(info ContactInfo) { s.Contact = &info }

// SetProjectInfo overwrites step-2 data.
func (s *State) SetProjectInfo(info ProjectInfo) { s.Project = &info }

func (s *State) SetRGPDAccepted(ok bool) { s.RGPDAccepted = ok }

// CanSubmit gates the final submission: every required piece must be present
// before any network call is made.
func (s *State) CanSubmit() bool { return s.ReadyForSubmit() == nil }

// ReadyForSubmit reports why the submission is still gated, nil when it may
// proceed.
func (s *State) ReadyForSubmit() error {
	if s.Configuration == nil {
		return ErrNoConfiguration
	}
	if !s.stepThreeReady() {
		return ErrStepGated
	}
	return nil
}

func (s *State) SetSubmitting(v bool) { s.Submitting = v }

func (s *State) SetSubmissionError(msg string) {
	s.Submitting = false
	s.SubmissionError = msg
	s.SubmittedNumber = ""
}

func (s *State) SetSubmittedNumber(numero string) {
	s.Submitting = false
	s.SubmittedNumber = numero
	s.SubmissionError = ""
}

// Reset clears everything.
func (s *State) Reset() { *s = State{Step: 1} }

// ResetForm clears the wizard but keeps the configuration and screenshot so
// the user can edit and resubmit.
func (s *State) ResetForm() {
	cfg, shot := s.Configuration, s.Screenshot
	*s = State{Step: 1, Configuration: cfg, Screenshot: shot}
}

// Persist stores the durable subset (submission flags excluded via tags).
func (s *State) Persist(store statestore.Store, key string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return store.Save(storeNamespace, key, b)
}

// Restore loads a persisted wizard; nil when no snapshot exists. The step is
// re-clamped on load so a hand-edited blob cannot bypass the step-3 gate.
func Restore(store statestore.Store, key string) (*State, error) {
	b, ok, err := store.Load(storeNamespace, key)
	if err != nil || !ok {
		return nil, err
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	step := s.Step
	s.Step = 1
	_ = s.SetStep(step)
	return &s, nil
}

// Clear drops the persisted wizard.
func Clear(store statestore.Store, key string) error {
	return store.Delete(storeNamespace, key)
}
