package handlers

import (
	"net/http"

	"caravanas/internal/repositories"
	"caravanas/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/passengers/:id/payments
func GetPassengerPayments(c *gin.Context) {
	passengerID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.PaymentRepository{}
	payments, err := repo.ListByPassenger(passengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// POST /api/passengers/:id/payments
func RegisterPayment(c *gin.Context) {
	passengerID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.PaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}

	payment, err := reconciler(c).RegisterPayment(passengerID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// DELETE /api/payments/:id
func DeletePayment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := reconciler(c).DeletePayment(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/payments/:id/receipt
func GetPaymentReceipt(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := reportsService(c).ReceiptPDF(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
