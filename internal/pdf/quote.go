package pdf

import (
	"encoding/json"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mbodji/metallerie-backend/internal/configurator"
	"github.com/mbodji/metallerie-backend/internal/models"
	"github.com/mbodji/metallerie-backend/internal/quoterequest"
)

// Generator renders the one-page quote summary sent to customers.
type Generator struct {
	CompanyName string
	CompanyLine string // adresse atelier sur une ligne
}

func NewGenerator(companyName, companyLine string) *Generator {
	return &Generator{CompanyName: companyName, CompanyLine: companyLine}
}

// snapshot mirror of the JSON frozen on the quote item.
type itemSnapshot struct {
	Configuration configurator.ExportConfig `json:"configuration"`
	Project       quoterequest.ProjectInfo  `json:"projectInfo"`
}

// QuotePDF renders the quote document. Items carry their configuration
// snapshot; the PDF is rebuilt entirely from persisted data.
func (g *Generator) QuotePDF(quote *models.Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(8, g.CompanyName, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(4, "DEVIS "+quote.Numero, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(8, g.CompanyLine, props.Text{Size: 8}),
		text.NewCol(4, "Demande du "+quote.DateDemande.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(12, "Valable jusqu'au "+quote.DateExpiration.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(4, line.NewCol(12))

	client := quote.User
	m.AddRow(6, text.NewCol(12, "Client", props.Text{Size: 10, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("%s %s %s — %s", client.Civilite, client.Prenom, client.Nom, client.Email), props.Text{Size: 9}))
	if client.Entreprise != "" {
		m.AddRow(5, text.NewCol(12, client.Entreprise+" — SIRET "+client.SIRET, props.Text{Size: 9}))
	}
	m.AddRow(4, line.NewCol(12))

	m.AddRow(6, text.NewCol(12, "Configuration", props.Text{Size: 10, Style: fontstyle.Bold}))
	for _, item := range quote.Items {
		var snap itemSnapshot
		if err := json.Unmarshal([]byte(item.Configuration), &snap); err != nil {
			// snapshot illisible: on retombe sur le libellé produit
			m.AddRow(5, text.NewCol(12, item.Product.Nom, props.Text{Size: 9}))
			continue
		}
		c := snap.Configuration
		m.AddRow(5, text.NewCol(12, c.FamilyName+" — "+c.StyleName, props.Text{Size: 9, Style: fontstyle.Bold}))
		dims := fmt.Sprintf("Dimensions : %.0f × %.0f cm", c.Dimensions.Width, c.Dimensions.Height)
		if c.Dimensions.Depth > 0 {
			dims += fmt.Sprintf(" × %.0f cm", c.Dimensions.Depth)
		}
		m.AddRow(5, text.NewCol(12, dims, props.Text{Size: 9}))
		m.AddRow(5, text.NewCol(12, "Matériau : "+c.MaterialName+" — Teinte : "+c.ColorName+" — Finition : "+c.Finish, props.Text{Size: 9}))
		for _, opt := range c.Options {
			m.AddRow(5, text.NewCol(12, "Option : "+opt, props.Text{Size: 9}))
		}
		if snap.Project.Ville != "" {
			m.AddRow(5, text.NewCol(12, fmt.Sprintf("Chantier : %s, %s %s", snap.Project.Adresse, snap.Project.CodePostal, snap.Project.Ville), props.Text{Size: 9}))
		}
	}
	m.AddRow(4, line.NewCol(12))

	m.AddRow(6,
		text.NewCol(8, "Total HT", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(4, fmt.Sprintf("%.2f €", quote.TotalHT), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(8, "TVA", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(4, fmt.Sprintf("%.2f €", quote.TotalTVA), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(8, "Total TTC", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(4, fmt.Sprintf("%.2f €", quote.TotalTTC), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	m.AddRow(10, text.NewCol(12, "Devis non contractuel — la pose et les finitions font l'objet d'une visite technique.", props.Text{Size: 7, Align: align.Center}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
