package handlers

import (
	"net/http"

	"caravanas/internal/repositories"
	"caravanas/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/passengers
func GetTripPassengers(c *gin.Context) {
	tripID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.PassengerRepository{}
	passengers, err := repo.ListByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, passengers)
}

// POST /api/trips/:id/passengers
func RegisterPassenger(c *gin.Context) {
	tripID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}

	p, err := passengerService(c).Register(tripID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/passengers/:id
func GetPassenger(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.PassengerRepository{}
	p, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/passengers/:id/breakdown
func GetPassengerBreakdown(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	b, err := reconciler(c).ComputeBreakdown(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/passengers/:id/fare
func UpdatePassengerFare(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.FareUpdate
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := reconciler(c)
	if err := svc.UpdateFareAndTours(id, in); err != nil {
		RespondDomainError(c, err)
		return
	}

	b, err := svc.ComputeBreakdown(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/passengers/:id/recompute
func RecomputePassengerStatus(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	cl, err := reconciler(c).RecomputeStatus(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

// POST /api/passengers/:id/mark-paid
func MarkPassengerAsPaid(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	payment, created, err := reconciler(c).MarkAsFullyPaid(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "passageiro já estava quitado"})
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// DELETE /api/passengers/:id
func DeletePassenger(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.PassengerRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
