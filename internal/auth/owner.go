// Package auth carries the authenticated owner through every tracker call.
//
// The tracker never authenticates anyone: a transport (HTTP middleware, the
// CLI) resolves an identity and hands the resulting Owner to each operation.
package auth

import (
	"fmt"
	"strings"

	"github.com/balkashynov/horas/internal/models"
)

// Owner is the capability proving which user a request acts for
type Owner struct {
	id string
}

// NewOwner builds an Owner from a resolved identity.
// A blank id is rejected with models.ErrUnauthorized.
func NewOwner(id string) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Owner{}, fmt.Errorf("%w: no owner resolved for request", models.ErrUnauthorized)
	}
	return Owner{id: id}, nil
}

// ID returns the owner id used to scope storage queries
func (o Owner) ID() string {
	return o.id
}

// Verify fails with models.ErrUnauthorized for the zero Owner
func (o Owner) Verify() error {
	if o.id == "" {
		return fmt.Errorf("%w: missing owner", models.ErrUnauthorized)
	}
	return nil
}

func (o Owner) String() string {
	return o.id
}
