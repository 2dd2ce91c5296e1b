package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusShipped   OrderStatus = "shipped"
)

// ParseOrderStatus aceita apenas os valores do enum, sem diferenciar maiúsculas
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusShipped:
		return status, true
	}
	return "", false
}

func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusCompleted
}

type Order struct {
	ID           int64                `json:"id"`
	OwnerID      int64                `json:"-"`
	ClientID     int64                `json:"client_id"`
	Reference    string               `json:"reference"`
	Status       OrderStatus          `json:"status"`
	Items        []*OrderItem         `json:"items"`
	TotalPrice   decimal.Decimal      `json:"total_price"`
	Contribution *RevenueContribution `json:"revenue_contribution,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal retorna quantidade × preço unitário capturado
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RevenueContribution registra o valor e o período aplicados ao faturamento mensal
// quando o pedido foi concluído. A reversão usa exatamente estes valores.
type RevenueContribution struct {
	Amount decimal.Decimal `json:"amount"`
	Period Period          `json:"period"`
}

// SumItems soma quantidade × preço de cada item
func SumItems(items []*OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	ClientID int64              `json:"client_id" validate:"required,gt=0"`
	Items    []OrderItemRequest `json:"items" validate:"dive"`
	Status   *string            `json:"status"`
}

type UpdateOrderRequest struct {
	ClientID *int64             `json:"client_id" validate:"omitempty,gt=0"`
	Items    []OrderItemRequest `json:"items" validate:"dive"`
	Status   *string            `json:"status"`
}

type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderFilters struct {
	Status *OrderStatus
}
