package model

import "time"

type Product struct {
	FSN             string `gorm:"primaryKey;size:64;not null"` // catalog id keying license inventory
	Title           string `gorm:"size:255;not null"`
	PricePaise      int64  `gorm:"not null"`
	Currency        string `gorm:"size:8;not null"`
	DownloadLink    string `gorm:"size:512"`
	InstallationDoc string `gorm:"size:255"`
	ProductImage    string `gorm:"size:512"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AmazonOrder is identified by OrderID, which is either an Amazon order id
// (XXX-XXXXXXX-XXXXXXX) or a generated 15-digit secret code. The unique index
// on OrderID is the actual guard against duplicate secret codes; the
// generator's pre-check only avoids wasted inserts.
type AmazonOrder struct {
	ID              string  `gorm:"primaryKey;size:36;not null"`
	OrderID         string  `gorm:"size:32;uniqueIndex;not null"`
	FSN             string  `gorm:"size:64;index;not null"`
	FulfillmentType string  `gorm:"size:32;not null"` // amazon_digital, amazon_fba
	WarrantyStatus  string  `gorm:"size:32;index;not null"`
	State           string  `gorm:"size:64"` // shipping state, drives redemption delay
	LicenseKeyID    *string `gorm:"size:36;index"`
	SellerAccountID *string `gorm:"size:36;index"`
	OrderDate       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StateDelay maps an uppercased state name to a redemption delay in hours.
// The sentinel row DEFAULT supplies the delay for states without a row.
type StateDelay struct {
	ID         string `gorm:"primaryKey;size:36;not null"`
	StateName  string `gorm:"size:64;uniqueIndex;not null"`
	DelayHours int    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (StateDelay) TableName() string {
	return "fba_state_delays"
}

type LicenseKey struct {
	ID         string  `gorm:"primaryKey;size:36;not null"`
	FSN        string  `gorm:"size:64;index;not null"`
	KeyValue   string  `gorm:"column:license_key;size:128;not null"`
	IsRedeemed bool    `gorm:"index;not null;default:false"`
	OrderID    *string `gorm:"size:36;index"` // set when redeemed; holds Amazon identifiers or checkout order uuids
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (LicenseKey) TableName() string {
	return "amazon_activation_license_keys"
}

// SellerAccount holds SP API credentials for one Amazon seller. ClientID,
// ClientSecret and RefreshToken are stored AES-256-GCM encrypted.
type SellerAccount struct {
	ID                string `gorm:"primaryKey;size:36;not null"`
	Name              string `gorm:"size:128;not null"`
	ClientID          string `gorm:"size:512;not null"`
	ClientSecret      string `gorm:"size:512;not null"`
	RefreshToken      string `gorm:"size:1024;not null"`
	MerchantToken     string `gorm:"size:64;not null"`
	MarketplaceID     string `gorm:"size:32;not null"`
	Priority          int    `gorm:"not null;default:100"` // lower = synced first
	IsActive          bool   `gorm:"not null;default:true"`
	LastSyncAt        *time.Time
	LastSyncStatus    string `gorm:"size:32"`
	OrdersSyncedCount int    `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (SellerAccount) TableName() string {
	return "amazon_seller_accounts"
}

type WarrantyRegistration struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	OrderID   string `gorm:"size:32;index;not null"`
	Email     string `gorm:"size:255;not null"`
	Status    string `gorm:"size:32;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WarrantyRegistration) TableName() string {
	return "warranty_registrations"
}

type ReplacementRequest struct {
	ID              string  `gorm:"primaryKey;size:36;not null"`
	OrderID         string  `gorm:"size:32;index;not null"`
	Reason          string  `gorm:"size:1024"`
	Status          string  `gorm:"size:32;index;not null"`
	NewLicenseKeyID *string `gorm:"size:36"`
	RejectReason    string  `gorm:"size:1024"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CheckoutOrder is a storefront (Razorpay) order, distinct from AmazonOrder.
type CheckoutOrder struct {
	ID              string `gorm:"primaryKey;size:36;not null"`
	Email           string `gorm:"size:255;not null"`
	RazorpayOrderID string `gorm:"size:64;uniqueIndex;not null"` // "local:<id>" until the gateway accepts the order
	Status          string `gorm:"size:32;index;not null"` // created, paid, delivered
	AmountPaise     int64  `gorm:"not null"`
	Currency        string `gorm:"size:8;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CheckoutItem struct {
	ID              uint    `gorm:"primaryKey"`
	CheckoutOrderID string  `gorm:"size:36;index;not null"`
	FSN             string  `gorm:"size:64;index;not null"`
	Quantity        int32   `gorm:"not null"`
	UnitPricePaise  int64   `gorm:"not null"`
	LicenseKeyID    *string `gorm:"size:36"`
	CreatedAt       time.Time
}
