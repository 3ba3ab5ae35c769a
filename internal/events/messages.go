package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/pricing"
)

const TypeAlertCreated = "price_alert.created"

// AlertCreatedMessage announces a new price alert. Consumers watch prices
// for the listed stores and notify the user once TargetPrice is reached.
type AlertCreatedMessage struct {
	Type        string    `json:"type"`
	AlertID     uuid.UUID `json:"alert_id"`
	UserID      uuid.UUID `json:"user_id"`
	ProductName string    `json:"product_name"`
	TargetPrice float64   `json:"target_price"`
	Stores      []string  `json:"stores"`
	AlertType   string    `json:"alert_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewAlertCreatedMessage(a *pricing.Alert, at time.Time) *AlertCreatedMessage {
	return &AlertCreatedMessage{
		Type:        TypeAlertCreated,
		AlertID:     a.ID,
		UserID:      a.UserID,
		ProductName: a.ProductName,
		TargetPrice: a.TargetPrice,
		Stores:      a.Stores,
		AlertType:   a.AlertType,
		Timestamp:   at,
	}
}

func (m *AlertCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertCreatedMessageFromJSON(data []byte) (*AlertCreatedMessage, error) {
	var msg AlertCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
