package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GET /api/presence/:token
//
// Página pública de embarque: consulta por token, sem autenticação.
func GetPresence(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		RespondError(c, http.StatusBadRequest, "token ausente", nil)
		return
	}

	p, err := passengerService(c).LookupByToken(token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"client_name":           p.ClientName,
		"payment_status":        p.PaymentStatus,
		"presence_confirmed":    p.PresenceConfirmed,
		"presence_confirmed_at": p.PresenceConfirmedAt,
	})
}

// POST /api/presence/:token/confirm
func ConfirmPresence(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		RespondError(c, http.StatusBadRequest, "token ausente", nil)
		return
	}

	p, err := passengerService(c).ConfirmPresence(token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":                    true,
		"presence_confirmed_at": p.PresenceConfirmedAt,
	})
}
