package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single financial transaction from any source.
// CategoryName and GroupName are empty until a category is stored or
// overlaid at read time by the projector.
type Transaction struct {
	Date         time.Time
	ID           string
	TenantID     TenantID
	Name         string // raw transaction description
	MerchantName string // cleaned merchant name, may be empty
	AccountID    string
	CategoryName string
	GroupName    string
	Hash         string
	Amount       decimal.Decimal
}

// Categorized reports whether the transaction already carries a real
// category. The aggregator sometimes delivers a literal placeholder that
// counts as uncategorized.
func (t *Transaction) Categorized() bool {
	return t.CategoryName != "" && t.CategoryName != PlaceholderCategory
}

// PlaceholderCategory is the value some upstream sources use for rows
// they could not categorize.
const PlaceholderCategory = "Uncategorized"

// MerchantKey returns the merchant memory key for this transaction.
func (t *Transaction) MerchantKey() string {
	return MerchantKey(t.MerchantName, t.Name)
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s",
		t.TenantID,
		t.Date.Format("2006-01-02"),
		t.Amount.String(),
		t.MerchantName,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
