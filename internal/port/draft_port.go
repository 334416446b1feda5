package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
)

type DraftRepository interface {
	// UpsertOpenDraft creates the open draft of the owner or overwrites its cart.
	UpsertOpenDraft(ctx context.Context, ownerID string, snapshot domain.CartSnapshot) (domain.OrderDraft, error)

	GetOpenDraft(ctx context.Context, ownerID string) (domain.OrderDraft, error)

	// LockOpenDraft must run inside a transaction, the row stays locked until it ends.
	LockOpenDraft(ctx context.Context, ownerID string) (domain.OrderDraft, error)

	MarkUsed(ctx context.Context, draftID uuid.UUID) error
}
