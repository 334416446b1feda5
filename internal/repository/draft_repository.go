package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/stockcheckout/internal/db"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
)

type draftRepository struct {
	q *db.Queries
}

func NewDraft(pool *pgxpool.Pool) port.DraftRepository {
	return &draftRepository{q: db.New(pool)}
}

func NewDraftWithTx(tx pgx.Tx) port.DraftRepository {
	return &draftRepository{q: db.New(tx)}
}

func (r *draftRepository) UpsertOpenDraft(ctx context.Context, ownerID string, snapshot domain.CartSnapshot) (domain.OrderDraft, error) {
	var d domain.OrderDraft

	if ownerID == "" {
		return d, fmt.Errorf("ownerID is empty: %w", domain.ErrValidation)
	}

	cart, err := json.Marshal(snapshot)
	if err != nil {
		return d, fmt.Errorf("json.Marshal: %w", err)
	}

	dbDraft, err := r.q.UpsertOpenDraft(ctx, db.UpsertOpenDraftParams{
		OwnerID: ownerID,
		Cart:    cart,
	})
	if err != nil {
		return d, fmt.Errorf("q.UpsertOpenDraft: %w", mapPgError(err))
	}

	d, err = mapDBDraftToDomain(dbDraft)
	if err != nil {
		return d, fmt.Errorf("mapDBDraftToDomain: %w", err)
	}

	return d, nil
}

func (r *draftRepository) GetOpenDraft(ctx context.Context, ownerID string) (domain.OrderDraft, error) {
	var d domain.OrderDraft

	dbDraft, err := r.q.GetOpenDraft(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return d, fmt.Errorf("open draft of owner[%s]: %w", ownerID, domain.ErrNotFound)
		}
		return d, fmt.Errorf("q.GetOpenDraft: %w", err)
	}

	d, err = mapDBDraftToDomain(dbDraft)
	if err != nil {
		return d, fmt.Errorf("mapDBDraftToDomain: %w", err)
	}

	return d, nil
}

func (r *draftRepository) LockOpenDraft(ctx context.Context, ownerID string) (domain.OrderDraft, error) {
	var d domain.OrderDraft

	dbDraft, err := r.q.LockOpenDraft(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return d, fmt.Errorf("open draft of owner[%s]: %w", ownerID, domain.ErrNotFound)
		}
		return d, fmt.Errorf("q.LockOpenDraft: %w", err)
	}

	d, err = mapDBDraftToDomain(dbDraft)
	if err != nil {
		return d, fmt.Errorf("mapDBDraftToDomain: %w", err)
	}

	return d, nil
}

func (r *draftRepository) MarkUsed(ctx context.Context, draftID uuid.UUID) error {
	rowsAffected, err := r.q.MarkDraftUsed(ctx, draftID)
	if err != nil {
		return fmt.Errorf("q.MarkDraftUsed: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("open draft[%s]: %w", draftID, domain.ErrNotFound)
	}

	return nil
}

func mapDBDraftToDomain(d db.OrderDraft) (domain.OrderDraft, error) {
	status, err := domain.ToDraftStatus(d.Status)
	if err != nil {
		return domain.OrderDraft{}, fmt.Errorf("domain.ToDraftStatus[%s]: %w", d.Status, err)
	}

	var cart domain.CartSnapshot
	if err := json.Unmarshal(d.Cart, &cart); err != nil {
		return domain.OrderDraft{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return domain.OrderDraft{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Status:    status,
		Cart:      cart,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
