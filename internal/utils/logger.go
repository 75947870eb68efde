package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized log line with module/action/request_id.
// The request id is passed in by the caller so handlers stay free of
// process-global request state. Avoid logging raw payloads.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(strings.TrimSpace(module)), action, req, message)
}
