package utils

import (
	"log"
	"strings"
)

// LogEvent emite uma linha por evento de negócio, sempre com módulo, ação e
// request_id. A mensagem deve ser um resumo; nunca logar payload sensível.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] request_id=%s action=%s msg=%s",
		strings.ToUpper(module), strings.TrimSpace(requestID), action, message)
}
