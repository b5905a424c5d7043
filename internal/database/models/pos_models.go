package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    string          `json:"imageUrl"`
	IsAvailable bool            `json:"isAvailable"`
}

// CartLine snapshots the menu item's name and price at the time it was added.
type CartLine struct {
	ItemID string          `json:"itemId"`
	Name   string          `json:"name"`
	Qty    int             `json:"qty"`
	Price  decimal.Decimal `json:"price"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

type Cart struct {
	Items    []CartLine      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func EmptyCart() Cart {
	return Cart{
		Items:    []CartLine{},
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) FindLine(itemID string) int {
	for i, line := range c.Items {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

type Sale struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestampISO"`
	Items         []CartLine      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
}

type Settings struct {
	UPIID         string  `json:"upiId"`
	QRURLOverride *string `json:"qrUrl"`
}

// -- Reporting --

type DayStat struct {
	Day     string          `json:"day"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type Summary struct {
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

type MonthlyReport struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Summary Summary    `json:"summary"`
	Days    []DayStat  `json:"days"`
}

// -- Receipt & payment --

type ReceiptLine struct {
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Receipt struct {
	ShopName    string          `json:"shopName"`
	ShopAddress string          `json:"shopAddress"`
	IssuedAt    time.Time       `json:"issuedAt"`
	Lines       []ReceiptLine   `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

type PaymentRequest struct {
	UPIID      string          `json:"upiId"`
	PayeeName  string          `json:"payeeName"`
	Amount     decimal.Decimal `json:"amount"`
	DeepLink   string          `json:"deepLink"`
	QRImageURL string          `json:"qrImageUrl"`
}
