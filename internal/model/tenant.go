package model

import "strings"

// TenantID scopes every merchant memory entry and every persisted row.
// The zero value is invalid everywhere; a missing tenant is always a hard
// failure, never a default.
type TenantID string

// Valid reports whether the tenant identifier is usable.
func (t TenantID) Valid() bool {
	return strings.TrimSpace(string(t)) != ""
}

func (t TenantID) String() string {
	return string(t)
}

// MerchantKey derives the identity used to index merchant memory: the
// merchant's display name, falling back to the transaction description
// when no merchant name exists. Keys compare case-insensitively.
func MerchantKey(merchantName, description string) string {
	key := strings.TrimSpace(merchantName)
	if key == "" {
		key = strings.TrimSpace(description)
	}
	return strings.ToLower(key)
}
