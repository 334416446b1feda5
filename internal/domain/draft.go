package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type DraftStatus string

const (
	DraftStatusOpen DraftStatus = "open"
	DraftStatusUsed DraftStatus = "used"
)

func ToDraftStatus(s string) (DraftStatus, error) {
	switch status := DraftStatus(s); status {
	case DraftStatusOpen, DraftStatusUsed:
		return status, nil
	}

	return "", errors.New("invalid draft status")
}

// OrderDraft holds the cart snapshot a user is checking out.
// A user has at most one open draft, it becomes used once an order is created from it.
type OrderDraft struct {
	ID      uuid.UUID
	OwnerID string
	Status  DraftStatus
	Cart    CartSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}
