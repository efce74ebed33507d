package models

import "encoding/json"

// Payment запись из истории платежей.
type Payment struct {
	ID        ID          `json:"id"`
	Amount    json.Number `json:"amount"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"created_at"`
}

// PaymentIntent ожидающий платёж, созданный сервером до подтверждения.
type PaymentIntent struct {
	ID      ID          `json:"id"`
	Amount  json.Number `json:"amount"`
	OrderID ID          `json:"order_id"`
}

// CreatePaymentRequest тело запроса на создание платежа.
type CreatePaymentRequest struct {
	PlanType PlanType `json:"plan_type" validate:"required,oneof=BASIC PREMIUM ENTERPRISE"`
}

// RefundRequest тело запроса на возврат.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// FindPayment ищет платёж по ID среди уже загруженных.
func FindPayment(payments []Payment, id ID) (Payment, bool) {
	for _, p := range payments {
		if p.ID == id {
			return p, true
		}
	}
	return Payment{}, false
}
