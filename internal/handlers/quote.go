package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mbodji/metallerie-backend/internal/auth"
	"github.com/mbodji/metallerie-backend/internal/httpx"
	"github.com/mbodji/metallerie-backend/internal/models"
	"github.com/mbodji/metallerie-backend/internal/services"
)

// QuoteHandler exposes the quote request pipeline and the admin surface.
type QuoteHandler struct {
	Svc *services.QuoteService
	PDF services.PDFRenderer
}

func NewQuoteHandler(svc *services.QuoteService, pdf services.PDFRenderer) *QuoteHandler {
	return &QuoteHandler{Svc: svc, PDF: pdf}
}

// Submit: POST /quotes
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := services.ValidateSubmission(in); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	res, err := h.Svc.Submit(in)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "quote_submission_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"quoteNumber": res.QuoteNumber,
		"quoteId":     strconv.FormatUint(uint64(res.QuoteID), 10),
		"message":     "Votre demande de devis a bien été enregistrée.",
	})
}

type quoteSummary struct {
	ID             uint    `json:"id"`
	Numero         string  `json:"numero"`
	DateDemande    string  `json:"dateDemande"`
	DateExpiration string  `json:"dateExpiration"`
	Status         string  `json:"status"`
	TotalHT        float64 `json:"totalHT"`
	TotalTVA       float64 `json:"totalTVA"`
	TotalTTC       float64 `json:"totalTTC"`
	ItemCount      int     `json:"itemCount"`
	FamilyName     string  `json:"familyName,omitempty"`
}

func summarize(q *models.Quote) quoteSummary {
	s := quoteSummary{
		ID:             q.ID,
		Numero:         q.Numero,
		DateDemande:    q.DateDemande.Format("2006-01-02"),
		DateExpiration: q.DateExpiration.Format("2006-01-02"),
		Status:         q.Status,
		TotalHT:        q.TotalHT,
		TotalTVA:       q.TotalTVA,
		TotalTTC:       q.TotalTTC,
		ItemCount:      len(q.Items),
	}
	if len(q.Items) > 0 {
		s.FamilyName = q.Items[0].Product.Family.Nom
	}
	return s
}

// List: GET /quotes?email=...
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_email", nil)
		return
	}
	quotes, err := h.Svc.ByEmail(email)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "unknown_email", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotes", nil)
		return
	}
	items := make([]quoteSummary, 0, len(quotes))
	for i := range quotes {
		items = append(items, summarize(&quotes[i]))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "items": items, "total": len(items)})
}

func (h *QuoteHandler) quoteFromPath(w http.ResponseWriter, r *http.Request) (*models.Quote, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	quote, err := h.Svc.ByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quote", nil)
		return nil, false
	}
	return quote, true
}

// Detail: GET /quotes/{id} — full breakdown including items and the message
// thread.
func (h *QuoteHandler) Detail(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.quoteFromPath(w, r)
	if !ok {
		return
	}
	type itemOut struct {
		ID             uint            `json:"id"`
		ProductName    string          `json:"productName"`
		Quantite       int             `json:"quantite"`
		PrixUnitaireHT float64         `json:"prixUnitaireHT"`
		TotalLigneHT   float64         `json:"totalLigneHT"`
		Configuration  json.RawMessage `json:"configuration"`
	}
	items := make([]itemOut, 0, len(quote.Items))
	for _, it := range quote.Items {
		items = append(items, itemOut{
			ID:             it.ID,
			ProductName:    it.Product.Nom,
			Quantite:       it.Quantite,
			PrixUnitaireHT: it.PrixUnitaireHT,
			TotalLigneHT:   it.TotalLigneHT,
			Configuration:  json.RawMessage(it.Configuration),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"quote":            summarize(quote),
		"commentaire":      quote.Commentaire,
		"commentaireAdmin": quote.CommentaireAdmin,
		"items":            items,
		"messages":         quote.Messages,
	})
}

// Patch: PATCH /quotes/{id} — status and/or admin comment. Admin only; the
// status enumeration is closed, anything else is rejected before any write.
func (h *QuoteHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var body struct {
		Status           *string `json:"status"`
		CommentaireAdmin *string `json:"commentaireAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	adminID, _ := auth.UserIDFromContext(r.Context())
	quote, err := h.Svc.UpdateStatus(uint(id), adminID, body.Status, body.CommentaireAdmin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", map[string]string{"status": "invalid_value"})
		case errors.Is(err, services.ErrQuoteNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quote", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "quote": summarize(quote)})
}

// AddMessage: POST /quotes/{id}/messages — append to the exchange thread.
func (h *QuoteHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var body struct {
		Contenu string `json:"contenu"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Contenu) == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"contenu": "required"})
		return
	}
	auteur := "client"
	if uid, ok := auth.UserIDFromContext(r.Context()); ok && uid != 0 {
		auteur = "admin"
	}
	msg, err := h.Svc.AddMessage(uint(id), auteur, body.Contenu)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_add_message", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "message": msg})
}

// DownloadPDF: GET /quotes/{id}/pdf
func (h *QuoteHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.quoteFromPath(w, r)
	if !ok {
		return
	}
	if h.PDF == nil {
		httpx.JSONError(w, http.StatusNotImplemented, "pdf_unavailable", nil)
		return
	}
	data, err := h.PDF.QuotePDF(quote)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+quote.Numero+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
