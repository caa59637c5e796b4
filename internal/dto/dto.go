package dto

import (
	"github.com/shopspring/decimal"

	"infinity-realms-shop/internal/catalog"
	"infinity-realms-shop/internal/model"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type LoginAlternativeRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PaymentItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type ProcessPaymentRequest struct {
	Method        string          `json:"method"`
	TransactionID string          `json:"transactionId"`
	PhoneNumber   string          `json:"phoneNumber"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Items         []PaymentItem   `json:"items"`
	Timestamp     string          `json:"timestamp"`
}

type CartTotalRequest struct {
	Items []catalog.CartLine `json:"items"`
}

type HistoryEntry struct {
	ID        string               `json:"id"`
	Timestamp string               `json:"timestamp"`
	Total     decimal.Decimal      `json:"total"`
	Status    string               `json:"status"`
	Items     []model.PurchaseItem `json:"items"`
}

type PopularItem struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// ProductView is a catalog item with the current overlay applied.
type ProductView struct {
	catalog.Item
	PriceNPR       int64  `json:"priceNPR"`
	OriginalPrice  *int64 `json:"originalPrice,omitempty"`
	SalePercentage *int   `json:"salePercentage,omitempty"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type VerifyPurchaseRequest struct {
	PurchaseID string `json:"purchaseId"`
}

type ApplyGlobalSaleRequest struct {
	Percentage int `json:"percentage"`
}

type ApplyProductSaleRequest struct {
	ProductID  string `json:"productId"`
	Percentage int    `json:"percentage"`
}

type RemoveProductSaleRequest struct {
	ProductID string `json:"productId"`
}

type AnnounceRequest struct {
	Message string `json:"message"`
}
