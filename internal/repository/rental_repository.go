package repository

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/store"
)

// RentalRepository implements domain.RentalRepository over the JSON store.
// Tenant and property references are accepted as-is; existence is resolved
// best-effort at read time by the join service.
type RentalRepository struct {
	store  *store.Store
	ids    idgen.Generator
	events events.Publisher
	logger *slog.Logger
}

func NewRentalRepository(st *store.Store, ids idgen.Generator, pub events.Publisher, logger *slog.Logger) *RentalRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RentalRepository{store: st, ids: ids, events: pub, logger: logger}
}

func (r *RentalRepository) List() ([]domain.Rental, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return db.Rentals, nil
}

func (r *RentalRepository) Get(id string) (*domain.Rental, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Rentals {
		if db.Rentals[i].ID == id {
			rent := db.Rentals[i]
			return &rent, nil
		}
	}
	return nil, fmt.Errorf("rental %s: %w", id, domain.ErrNotFound)
}

func (r *RentalRepository) Create(draft domain.Rental) (*domain.Rental, error) {
	var violations []string
	if draft.TenantID == "" {
		violations = append(violations, "Tenant is required")
	}
	if draft.PropertyID == "" {
		violations = append(violations, "Property is required")
	}
	if draft.MonthlyRent <= 0 {
		violations = append(violations, "Monthly rent must be greater than 0")
	}
	if draft.PaidUntil == "" {
		violations = append(violations, "Paid until date is required")
	} else if !validDate(draft.PaidUntil) {
		violations = append(violations, "Paid until must be a valid date (YYYY-MM-DD)")
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

	err := r.store.Update(func(db *domain.Database) error {
		db.Rentals = append(db.Rentals, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("rental created", slog.String("rental_id", draft.ID))
	publish(r.events, "rental", "created", draft.ID)
	return &draft, nil
}

func (r *RentalRepository) Update(id string, patch domain.RentalPatch) (*domain.Rental, error) {
	if patch.PaidUntil != nil && !validDate(*patch.PaidUntil) {
		return nil, domain.NewValidationError([]string{"Paid until must be a valid date (YYYY-MM-DD)"})
	}

	var updated domain.Rental
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Rentals {
			if db.Rentals[i].ID != id {
				continue
			}
			rent := &db.Rentals[i]
			if patch.TenantID != nil {
				rent.TenantID = *patch.TenantID
			}
			if patch.PropertyID != nil {
				rent.PropertyID = *patch.PropertyID
			}
			if patch.MonthlyRent != nil {
				rent.MonthlyRent = *patch.MonthlyRent
			}
			if patch.PaidUntil != nil {
				rent.PaidUntil = *patch.PaidUntil
			}
			rent.UpdatedAt = time.Now().UTC()
			updated = *rent
			return nil
		}
		return fmt.Errorf("rental %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(r.events, "rental", "updated", id)
	return &updated, nil
}

func (r *RentalRepository) Delete(id string) error {
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Rentals {
			if db.Rentals[i].ID == id {
				db.Rentals = append(db.Rentals[:i], db.Rentals[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("rental %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("rental deleted", slog.String("rental_id", id))
	publish(r.events, "rental", "deleted", id)
	return nil
}
