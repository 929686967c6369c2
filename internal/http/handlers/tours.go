package handlers

import (
	"net/http"
	"strings"

	"caravanas/internal/domain/models"
	"caravanas/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/tours
func GetTripTours(c *gin.Context) {
	tripID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.TourRepository{}
	tours, err := repo.ListByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

// POST /api/trips/:id/tours
func CreateTour(c *gin.Context) {
	tripID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var t models.Tour
	if !BindJSONOrError(c, &t) {
		return
	}

	t.TripID = tripID
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		RespondError(c, http.StatusBadRequest, "name é obrigatório", nil)
		return
	}
	if t.Price < 0 {
		RespondError(c, http.StatusBadRequest, "price não pode ser negativo", nil)
		return
	}

	repo := repositories.TourRepository{}
	id, err := repo.Create(t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, t)
}

// DELETE /api/tours/:id
func DeleteTour(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.TourRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/passengers/:id/tours
func GetPassengerTours(c *gin.Context) {
	passengerID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.TourSelectionRepository{}
	selections, err := repo.ListByPassenger(passengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, selections)
}
