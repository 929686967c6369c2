package handlers

import (
	"net/http"

	"caravanas/internal/repositories"
	"caravanas/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/passengers/:id/installments
func GetPassengerInstallments(c *gin.Context) {
	passengerID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.InstallmentRepository{}
	installments, err := repo.ListByPassenger(passengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, installments)
}

// POST /api/passengers/:id/installments
func AddInstallment(c *gin.Context) {
	passengerID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.InstallmentInput
	if !BindJSONOrError(c, &in) {
		return
	}

	installment, err := reconciler(c).AddInstallment(passengerID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, installment)
}

// DELETE /api/installments/:id
func DeleteInstallment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := reconciler(c).DeleteInstallment(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
