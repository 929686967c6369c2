package handlers

import (
	"net/http"
	"strings"

	"caravanas/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/finance
func GetTripFinance(c *gin.Context) {
	tripID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	summary, err := rosterService(c).AggregateRoster(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /api/trips/:id/report
func GetTripFinanceReport(c *gin.Context) {
	tripID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := reportsService(c).TripFinancePDF(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

type outreachRequest struct {
	Channel string `json:"channel"`
	Notes   string `json:"notes"`
}

// POST /api/passengers/:id/contact
func RegisterOutreach(c *gin.Context) {
	passengerID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req outreachRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Channel) == "" {
		RespondError(c, http.StatusBadRequest, "channel é obrigatório", nil)
		return
	}

	entry, err := rosterService(c).RegisterOutreach(passengerID, req.Channel, req.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/passengers/:id/contact
func GetOutreachHistory(c *gin.Context) {
	passengerID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.ContactRepository{}
	entries, err := repo.ListByPassenger(passengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
