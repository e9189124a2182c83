package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

func validateTenant(tenant model.TenantID) error {
	if !tenant.Valid() {
		return fmt.Errorf("%w: query without tenant", common.ErrUnauthorized)
	}
	return nil
}
