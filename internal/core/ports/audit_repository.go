package ports

import (
	"context"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
