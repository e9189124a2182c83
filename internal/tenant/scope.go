package tenant

import (
	"fmt"

	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
)

// Scope names the tenants a persisted-record query may touch: exactly one
// tenant, or explicitly all of them. There is no implicit "no filter";
// the zero value is rejected everywhere.
type Scope struct {
	tenant model.TenantID
	all    bool
}

// One scopes a query to a single tenant.
func One(t model.TenantID) Scope {
	return Scope{tenant: t}
}

// AllTenants is the explicit administrative override spanning every
// tenant.
func AllTenants() Scope {
	return Scope{all: true}
}

// All reports whether the scope spans every tenant.
func (s Scope) All() bool {
	return s.all
}

// Tenant returns the single tenant the scope names, when it names one.
func (s Scope) Tenant() (model.TenantID, bool) {
	if s.all {
		return "", false
	}
	return s.tenant, s.tenant.Valid()
}

// Validate rejects the zero value and malformed tenants.
func (s Scope) Validate() error {
	if s.all {
		return nil
	}
	if !s.tenant.Valid() {
		return fmt.Errorf("%w: query scope names no tenant", common.ErrUnauthorized)
	}
	return nil
}

func (s Scope) String() string {
	if s.all {
		return "all-tenants"
	}
	return s.tenant.String()
}
