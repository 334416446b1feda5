package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/metrics"
	"github.com/nikolayk812/stockcheckout/internal/port"
)

// DraftManager keeps the single open draft of each user in sync with the live cart.
type DraftManager struct {
	drafts  port.DraftRepository
	metrics *metrics.Checkout
	logger  *slog.Logger
}

func NewDraftManager(drafts port.DraftRepository, m *metrics.Checkout, logger *slog.Logger) *DraftManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &DraftManager{
		drafts:  drafts,
		metrics: m,
		logger:  logger,
	}
}

// GetOrCreateDraft returns the open draft of user with its cart overwritten by snapshot,
// creating the draft when the user has none. Anonymous users get domain.ErrUnauthenticated
// and the store is not touched.
func (m *DraftManager) GetOrCreateDraft(ctx context.Context, user domain.User, snapshot domain.CartSnapshot) (domain.OrderDraft, error) {
	if !user.IsAuthenticated() {
		m.logger.Warn("draft requested without authenticated user")
		m.metrics.ObserveDraft(metrics.DraftUnauthenticated)
		return domain.OrderDraft{}, fmt.Errorf("get or create draft: %w", domain.ErrUnauthenticated)
	}

	draft, err := m.drafts.UpsertOpenDraft(ctx, user.ID, snapshot)
	if err != nil {
		m.metrics.ObserveDraft(metrics.DraftError)
		return domain.OrderDraft{}, fmt.Errorf("drafts.UpsertOpenDraft: %w", err)
	}

	m.metrics.ObserveDraft(metrics.DraftSynced)
	m.logger.Debug("draft synced",
		"owner_id", user.ID,
		"draft_id", draft.ID,
		"items", len(draft.Cart.Items))

	return draft, nil
}
