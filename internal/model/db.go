package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusUnverified = "unverified"
	StatusVerified   = "verified"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Purchase struct {
	ID                 string          `gorm:"primaryKey;size:36;not null" json:"id"`
	Username           string          `gorm:"size:255;index;not null" json:"username"`
	Email              string          `gorm:"size:255" json:"email"`
	MinecraftUsername  string          `gorm:"size:255" json:"minecraft_username"`
	Items              datatypes.JSON  `gorm:"not null" json:"items"`
	Amount             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency           string          `gorm:"size:10;default:NPR" json:"currency"`
	Provider           string          `gorm:"size:50;not null" json:"provider"` // esewa, khalti, paypal
	Status             string          `gorm:"size:32;index;not null" json:"status"`
	VerificationStatus string          `gorm:"size:32;not null" json:"verification_status"`
	IP                 string          `gorm:"size:45" json:"ip"`
	TransactionID      string          `gorm:"size:255" json:"transaction_id"`
	PhoneNumber        string          `gorm:"size:20" json:"phone_number"`
	Timestamp          time.Time       `json:"timestamp"`
	CreatedAt          time.Time       `json:"created_at"`
}

// PurchaseItem is the frozen copy of one cart line embedded into a purchase
// at submission time. Catalog or discount changes after checkout never touch it.
type PurchaseItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}
