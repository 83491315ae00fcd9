package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusWaiting  OrderStatus = "waiting"
	OrderStatusIssued   OrderStatus = "issued"
	OrderStatusReturned OrderStatus = "returned"
)

// Valid сообщает, известен ли статус
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusWaiting, OrderStatusIssued, OrderStatusReturned:
		return true
	}
	return false
}

// OrderItem позиция в заказе, не меняется после создания заказа
type OrderItem struct {
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order посылка в пункте выдачи
type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Barcode      string          `json:"barcode"`
	Status       OrderStatus     `json:"status"`
	Items        []OrderItem     `json:"items"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ReturnReason string          `json:"return_reason,omitempty"`
	IssuedBy     *Actor          `json:"issued_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TotalOf считает сумму позиций. Вызывается один раз при создании заказа.
func TotalOf(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// Warning предупреждение стажёру
type Warning struct {
	ID       string    `json:"id"`
	Reason   string    `json:"reason"`
	Date     time.Time `json:"date"`
	IssuedBy Actor     `json:"issued_by"`
}

// Intern стажёр пункта выдачи
type Intern struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Surname        string          `json:"surname"`
	Salary         decimal.Decimal `json:"salary"`
	TotalEarned    decimal.Decimal `json:"total_earned"`
	IssuedOrders   int64           `json:"issued_orders"`
	ReturnedOrders int64           `json:"returned_orders"`
	Warns          []Warning       `json:"warns"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Clone возвращает копию без общих срезов
func (i Intern) Clone() Intern {
	cp := i
	cp.Warns = append([]Warning(nil), i.Warns...)
	return cp
}

// Clone возвращает копию без общих срезов
func (o Order) Clone() Order {
	cp := o
	cp.Items = append([]OrderItem(nil), o.Items...)
	if o.IssuedBy != nil {
		a := *o.IssuedBy
		cp.IssuedBy = &a
	}
	return cp
}

// Stats счётчики заказов по статусам
type Stats struct {
	Total    int `json:"total"`
	Waiting  int `json:"waiting"`
	Issued   int `json:"issued"`
	Returned int `json:"returned"`
}
