package services

import (
	"github.com/mbodji/metallerie-backend/internal/quoterequest"
	"github.com/mbodji/metallerie-backend/internal/validation"
)

// ValidateSubmission checks the structural validity of a submission payload:
// presence and type of every field of the input contract, plus the client
// type conditionality (un professionnel doit fournir entreprise et SIRET).
// It does not re-derive the price nor re-check dimension bounds against the
// catalog; that trust boundary stays with the configurator.
func ValidateSubmission(in SubmissionInput) validation.Violations {
	v := validation.Violations{}

	validation.Required("configuration.family", in.Configuration.Family, v)
	validation.Required("configuration.familyName", in.Configuration.FamilyName, v)
	validation.PositiveFloat("configuration.price", in.Configuration.Price, v)
	validation.PositiveFloat("configuration.dimensions.width", in.Configuration.Dimensions.Width, v)
	validation.PositiveFloat("configuration.dimensions.height", in.Configuration.Dimensions.Height, v)

	validation.Required("contactInfo.typeClient", in.Contact.TypeClient, v)
	validation.OneOf("contactInfo.typeClient", in.Contact.TypeClient,
		[]string{quoterequest.ClientParticulier, quoterequest.ClientProfessionnel}, v)
	validation.Required("contactInfo.prenom", in.Contact.Prenom, v)
	validation.Required("contactInfo.nom", in.Contact.Nom, v)
	validation.Required("contactInfo.email", in.Contact.Email, v)
	validation.Email("contactInfo.email", in.Contact.Email, v)
	validation.Required("contactInfo.telephone", in.Contact.Telephone, v)
	if in.Contact.TypeClient == quoterequest.ClientProfessionnel {
		validation.Required("contactInfo.entreprise", in.Contact.Entreprise, v)
		validation.Required("contactInfo.siret", in.Contact.SIRET, v)
	}

	validation.Required("projectInfo.adresse", in.Project.Adresse, v)
	validation.Required("projectInfo.codePostal", in.Project.CodePostal, v)
	validation.Required("projectInfo.ville", in.Project.Ville, v)
	validation.Required("projectInfo.typeProjet", in.Project.TypeProjet, v)
	validation.OneOf("projectInfo.typeProjet", in.Project.TypeProjet,
		[]string{quoterequest.ProjetNeuf, quoterequest.ProjetRenovation, quoterequest.ProjetRemplacement}, v)
	validation.OneOf("projectInfo.delai", in.Project.Delai,
		[]string{quoterequest.DelaiUrgent, quoterequest.Delai1a3Mois, quoterequest.Delai3a6Mois, quoterequest.DelaiFlexible}, v)
	validation.MaxLen("projectInfo.commentaire", in.Project.Commentaire, 4000, v)

	if !in.RGPDAccepted {
		v["rgpdAccepted"] = "consent_required"
	}
	return v
}
