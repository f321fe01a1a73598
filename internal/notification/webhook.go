package notification

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

// SendOverdueAlert posts a fire-and-forget alert that a contract still has
// overdue installments. Errors are logged, never surfaced; an unset URL
// disables the webhook.
func SendOverdueAlert(webhookURL string, contractID uint, overdueCount int) {
	if webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"message":      "alert: contract has overdue installments after payment",
		"contractId":   contractID,
		"overdueCount": overdueCount,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("overdue webhook failed: %v", err)
		return
	}
	defer resp.Body.Close()
}
