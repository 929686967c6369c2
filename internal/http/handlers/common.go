package handlers

import (
	"net/http"
	"strconv"

	"caravanas/internal/http/middleware"
	"caravanas/internal/repositories"
	"caravanas/internal/services"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "corpo vazio", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload inválido", err)
		return false
	}
	return true
}

// ParseIDParam reads a positive int64 path parameter or answers 400.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id inválido", err)
		return 0, false
	}
	return id, true
}

// Service builders: repositories fall back to the shared config.DB.

func reconciler(c *gin.Context) services.ReconciliationService {
	return services.ReconciliationService{
		PassengerRepo:   repositories.PassengerRepository{},
		PaymentRepo:     repositories.PaymentRepository{},
		TourRepo:        repositories.TourSelectionRepository{},
		InstallmentRepo: repositories.InstallmentRepository{},
		RequestID:       middleware.GetRequestID(c),
	}
}

func rosterService(c *gin.Context) services.RosterService {
	return services.RosterService{
		TripRepo:        repositories.TripRepository{},
		PassengerRepo:   repositories.PassengerRepository{},
		TourRepo:        repositories.TourSelectionRepository{},
		PaymentRepo:     repositories.PaymentRepository{},
		InstallmentRepo: repositories.InstallmentRepository{},
		ContactRepo:     repositories.ContactRepository{},
		RequestID:       middleware.GetRequestID(c),
	}
}

func passengerService(c *gin.Context) services.PassengerService {
	return services.PassengerService{
		TripRepo:      repositories.TripRepository{},
		PassengerRepo: repositories.PassengerRepository{},
		TourRepo:      repositories.TourSelectionRepository{},
		RequestID:     middleware.GetRequestID(c),
	}
}

func reportsService(c *gin.Context) services.ReportsService {
	return services.ReportsService{
		TripRepo:      repositories.TripRepository{},
		PassengerRepo: repositories.PassengerRepository{},
		PaymentRepo:   repositories.PaymentRepository{},
		Roster:        rosterService(c),
		RequestID:     middleware.GetRequestID(c),
	}
}
