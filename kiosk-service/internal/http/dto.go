package http

import (
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/shopspring/decimal"
)

type LineItemResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Price       string         `json:"price"`
	Quantity    int            `json:"quantity"`
	LineTotal   string         `json:"line_total"`
	Confidence  *float64       `json:"confidence,omitempty"`
	Product     domain.Product `json:"product"`
	Timestamp   time.Time      `json:"timestamp"`
}

type TotalsResponse struct {
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

type CartResponse struct {
	Items []LineItemResponse `json:"items"`
	TotalsResponse
}

type ReceiptResponse struct {
	ReceiptID     string `json:"receipt_id"`
	Timestamp     string `json:"timestamp,omitempty"`
	Subtotal      string `json:"subtotal"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Status        string `json:"status,omitempty"`
}

type SessionResponse struct {
	ID            string             `json:"id"`
	State         string             `json:"state"`
	PaymentMethod string             `json:"payment_method"`
	Items         []LineItemResponse `json:"items"`
	Subtotal      string             `json:"subtotal"`
	Tax           string             `json:"tax"`
	Total         string             `json:"total"`
	Receipt       *ReceiptResponse   `json:"receipt,omitempty"`
	Failure       string             `json:"failure,omitempty"`
	OpenedAt      time.Time          `json:"opened_at"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toLineItems(items []domain.CartLineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, item := range items {
		out[i] = LineItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			DisplayName: item.DisplayName(),
			Price:       money(item.Price),
			Quantity:    item.Quantity,
			LineTotal:   money(item.LineTotal()),
			Confidence:  item.Confidence,
			Product:     item.Product,
			Timestamp:   item.Timestamp,
		}
	}
	return out
}

func toTotals(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:  money(t.Subtotal),
		Tax:       money(t.Tax),
		Total:     money(t.Total),
		ItemCount: t.ItemCount,
	}
}

func toSession(s domain.CheckoutSession) SessionResponse {
	resp := SessionResponse{
		ID:            s.ID,
		State:         s.State.String(),
		PaymentMethod: string(s.PaymentMethod),
		Items:         toLineItems(s.Items),
		Subtotal:      money(s.Subtotal),
		Tax:           money(s.Tax),
		Total:         money(s.Total),
		Failure:       s.Failure,
		OpenedAt:      s.OpenedAt,
	}
	if s.Receipt != nil {
		resp.Receipt = &ReceiptResponse{
			ReceiptID:     s.Receipt.ReceiptID,
			Timestamp:     s.Receipt.Timestamp,
			Subtotal:      money(s.Receipt.Subtotal),
			Tax:           money(s.Receipt.Tax),
			Total:         money(s.Receipt.Total),
			PaymentMethod: string(s.Receipt.PaymentMethod),
			Status:        s.Receipt.Status,
		}
	}
	return resp
}
