package repository

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/store"
)

// RentalContractRepository implements domain.RentalContractRepository over
// the JSON store.
type RentalContractRepository struct {
	store  *store.Store
	ids    idgen.Generator
	events events.Publisher
	logger *slog.Logger
}

func NewRentalContractRepository(st *store.Store, ids idgen.Generator, pub events.Publisher, logger *slog.Logger) *RentalContractRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RentalContractRepository{store: st, ids: ids, events: pub, logger: logger}
}

// NewContractNumber builds RC-YYYYMMDD-### with a random three-digit suffix.
// Uniqueness is not checked against existing contracts; collisions within a
// day are possible and accepted.
func NewContractNumber(now time.Time) string {
	return fmt.Sprintf("RC-%s-%03d", now.Format("20060102"), rand.Intn(1000))
}

func (r *RentalContractRepository) List() ([]domain.RentalContract, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return db.RentalContracts, nil
}

func (r *RentalContractRepository) Get(id string) (*domain.RentalContract, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.RentalContracts {
		if db.RentalContracts[i].ID == id {
			c := db.RentalContracts[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("rental contract %s: %w", id, domain.ErrNotFound)
}

func (r *RentalContractRepository) Create(draft domain.RentalContract) (*domain.RentalContract, error) {
	var violations []string
	if strings.TrimSpace(draft.LandlordName) == "" {
		violations = append(violations, "Landlord name is required")
	}
	if strings.TrimSpace(draft.TenantName) == "" {
		violations = append(violations, "Tenant name is required")
	}
	if strings.TrimSpace(draft.TenantIDPassport) == "" {
		violations = append(violations, "Tenant ID/Passport is required")
	}
	if strings.TrimSpace(draft.TenantPhone) == "" {
		violations = append(violations, "Tenant phone is required")
	}
	if draft.ValidFrom == "" {
		violations = append(violations, "Contract start date is required")
	}
	if draft.ValidTo == "" {
		violations = append(violations, "Contract end date is required")
	}
	if draft.MonthlyRent <= 0 {
		violations = append(violations, "Monthly rent must be greater than 0")
	}
	if draft.ValidFrom != "" && draft.ValidTo != "" {
		from, errFrom := time.Parse(domain.DateOnly, draft.ValidFrom)
		to, errTo := time.Parse(domain.DateOnly, draft.ValidTo)
		switch {
		case errFrom != nil || errTo != nil:
			violations = append(violations, "Contract dates must be valid dates (YYYY-MM-DD)")
		case !to.After(from):
			violations = append(violations, "Contract end date must be after start date")
		}
	}
	if err := domain.NewValidationError(violations); err != nil {
		return nil, err
	}

	if draft.ID == "" {
		draft.ID = r.ids.NewID()
	}
	now := time.Now().UTC()
	if draft.ContractNumber == "" {
		draft.ContractNumber = NewContractNumber(now)
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = draft.CreatedAt
	if draft.Type == "" {
		draft.Type = "rental"
	}
	if draft.Status == "" {
		draft.Status = "draft"
	}

	err := r.store.Update(func(db *domain.Database) error {
		db.RentalContracts = append(db.RentalContracts, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("rental contract created",
		slog.String("contract_id", draft.ID),
		slog.String("contract_number", draft.ContractNumber),
	)
	publish(r.events, "rentalContract", "created", draft.ID)
	return &draft, nil
}

func (r *RentalContractRepository) Update(id string, patch domain.RentalContractPatch) (*domain.RentalContract, error) {
	var updated domain.RentalContract
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.RentalContracts {
			if db.RentalContracts[i].ID != id {
				continue
			}
			c := &db.RentalContracts[i]
			if patch.Type != nil {
				c.Type = *patch.Type
			}
			if patch.Status != nil {
				c.Status = *patch.Status
			}
			if patch.LandlordName != nil {
				c.LandlordName = *patch.LandlordName
			}
			if patch.TenantName != nil {
				c.TenantName = *patch.TenantName
			}
			if patch.TenantIDPassport != nil {
				c.TenantIDPassport = *patch.TenantIDPassport
			}
			if patch.TenantPhone != nil {
				c.TenantPhone = *patch.TenantPhone
			}
			if patch.PropertyID != nil {
				c.PropertyID = *patch.PropertyID
			}
			if patch.ValidFrom != nil {
				c.ValidFrom = *patch.ValidFrom
			}
			if patch.ValidTo != nil {
				c.ValidTo = *patch.ValidTo
			}
			if patch.MonthlyRent != nil {
				c.MonthlyRent = *patch.MonthlyRent
			}
			if !validDate(c.ValidFrom) || !validDate(c.ValidTo) {
				return domain.NewValidationError([]string{"Contract dates must be valid dates (YYYY-MM-DD)"})
			}
			from, _ := time.Parse(domain.DateOnly, c.ValidFrom)
			to, _ := time.Parse(domain.DateOnly, c.ValidTo)
			if !to.After(from) {
				return domain.NewValidationError([]string{"Contract end date must be after start date"})
			}
			c.UpdatedAt = time.Now().UTC()
			updated = *c
			return nil
		}
		return fmt.Errorf("rental contract %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(r.events, "rentalContract", "updated", id)
	return &updated, nil
}

func (r *RentalContractRepository) Delete(id string) error {
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.RentalContracts {
			if db.RentalContracts[i].ID == id {
				db.RentalContracts = append(db.RentalContracts[:i], db.RentalContracts[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("rental contract %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("rental contract deleted", slog.String("contract_id", id))
	publish(r.events, "rentalContract", "deleted", id)
	return nil
}
