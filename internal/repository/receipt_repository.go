package repository

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/store"
)

var receiptNoPattern = regexp.MustCompile(`^TPL-(\d+)$`)

// ReceiptRepository implements domain.ReceiptRepository over the JSON store.
// Receipt numbers are assigned inside the store's update lock, so two
// concurrent creates in this process cannot draw the same number.
type ReceiptRepository struct {
	store  *store.Store
	ids    idgen.Generator
	events events.Publisher
	logger *slog.Logger
}

func NewReceiptRepository(st *store.Store, ids idgen.Generator, pub events.Publisher, logger *slog.Logger) *ReceiptRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptRepository{store: st, ids: ids, events: pub, logger: logger}
}

// NextReceiptNumber returns TPL-#### with the numeric suffix one past the
// highest existing one. Entries whose number does not match the pattern
// count as zero.
func NextReceiptNumber(receipts []domain.Receipt) string {
	max := 0
	for i := range receipts {
		m := receiptNoPattern.FindStringSubmatch(receipts[i].ReceiptNo)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("TPL-%04d", max+1)
}

func (r *ReceiptRepository) List() ([]domain.Receipt, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return db.Receipts, nil
}

func (r *ReceiptRepository) Get(id string) (*domain.Receipt, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Receipts {
		if db.Receipts[i].ID == id {
			rc := db.Receipts[i]
			return &rc, nil
		}
	}
	return nil, fmt.Errorf("receipt %s: %w", id, domain.ErrNotFound)
}

// Create validates the draft and assigns the next receipt number. A caller-
// supplied receiptNo is ignored; the sequence is server-owned.
func (r *ReceiptRepository) Create(draft domain.Receipt) (*domain.Receipt, error) {
	var violations []string
	if draft.Type == "" {
		violations = append(violations, "Receipt type is required")
	}
	if draft.Amount <= 0 {
		violations = append(violations, "Amount must be greater than 0")
	}
	if strings.TrimSpace(draft.PaidBy) == "" {
		violations = append(violations, "Paid by is required")
	}
	if draft.PaymentMethod == "" {
		violations = append(violations, "Payment method is required")
	}
	if err := domain.NewValidationError(violations); err != nil {
		return nil, err
	}

	if draft.ID == "" {
		draft.ID = r.ids.NewID()
	}
	now := time.Now().UTC()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = draft.CreatedAt
	draft.PaidBy = strings.TrimSpace(draft.PaidBy)
	if draft.Date == "" {
		draft.Date = now.Format(domain.DateOnly)
	}

	err := r.store.Update(func(db *domain.Database) error {
		draft.ReceiptNo = NextReceiptNumber(db.Receipts)
		db.Receipts = append(db.Receipts, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("receipt created",
		slog.String("receipt_id", draft.ID),
		slog.String("receipt_no", draft.ReceiptNo),
	)
	publish(r.events, "receipt", "created", draft.ID)
	return &draft, nil
}

// Update merges the patch onto the stored receipt. ID and receiptNo are
// never merged.
func (r *ReceiptRepository) Update(id string, patch domain.ReceiptPatch) (*domain.Receipt, error) {
	var updated domain.Receipt
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Receipts {
			if db.Receipts[i].ID != id {
				continue
			}
			rc := &db.Receipts[i]
			if patch.Type != nil {
				rc.Type = *patch.Type
			}
			if patch.Amount != nil {
				rc.Amount = *patch.Amount
			}
			if patch.PaidBy != nil {
				rc.PaidBy = *patch.PaidBy
			}
			if patch.CustomerID != nil {
				rc.CustomerID = *patch.CustomerID
			}
			if patch.PropertyID != nil {
				rc.PropertyID = *patch.PropertyID
			}
			if patch.RentalID != nil {
				rc.RentalID = *patch.RentalID
			}
			if patch.ProjectID != nil {
				rc.ProjectID = *patch.ProjectID
			}
			if patch.PaymentMethod != nil {
				rc.PaymentMethod = *patch.PaymentMethod
			}
			if patch.Reference != nil {
				rc.Reference = *patch.Reference
			}
			if patch.Description != nil {
				rc.Description = *patch.Description
			}
			if patch.Date != nil {
				rc.Date = *patch.Date
			}
			rc.UpdatedAt = time.Now().UTC()
			updated = *rc
			return nil
		}
		return fmt.Errorf("receipt %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(r.events, "receipt", "updated", id)
	return &updated, nil
}

func (r *ReceiptRepository) Delete(id string) error {
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Receipts {
			if db.Receipts[i].ID == id {
				db.Receipts = append(db.Receipts[:i], db.Receipts[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("receipt %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("receipt deleted", slog.String("receipt_id", id))
	publish(r.events, "receipt", "deleted", id)
	return nil
}
