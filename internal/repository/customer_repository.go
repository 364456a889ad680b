package repository

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/store"
)

// CustomerRepository implements domain.CustomerRepository over the JSON store.
type CustomerRepository struct {
	store  *store.Store
	ids    idgen.Generator
	events events.Publisher
	logger *slog.Logger
}

func NewCustomerRepository(st *store.Store, ids idgen.Generator, pub events.Publisher, logger *slog.Logger) *CustomerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerRepository{store: st, ids: ids, events: pub, logger: logger}
}

func (r *CustomerRepository) List() ([]domain.Customer, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return db.Customers, nil
}

func (r *CustomerRepository) Get(id string) (*domain.Customer, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Customers {
		if db.Customers[i].ID == id {
			c := db.Customers[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
}

func (r *CustomerRepository) Create(draft domain.Customer) (*domain.Customer, error) {
	var violations []string
	if strings.TrimSpace(draft.Name) == "" {
		violations = append(violations, "Customer name is required")
	}
	if draft.Type == "" {
		violations = append(violations, "Customer type is required")
	}
	if strings.TrimSpace(draft.Phone) == "" {
		violations = append(violations, "Phone number is required")
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
	if draft.AssignedPropertyIDs == nil {
		draft.AssignedPropertyIDs = []string{}
	}

	err := r.store.Update(func(db *domain.Database) error {
		db.Customers = append(db.Customers, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("customer created", slog.String("customer_id", draft.ID))
	publish(r.events, "customer", "created", draft.ID)
	return &draft, nil
}

func (r *CustomerRepository) Update(id string, patch domain.CustomerPatch) (*domain.Customer, error) {
	var updated domain.Customer
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Customers {
			if db.Customers[i].ID != id {
				continue
			}
			c := &db.Customers[i]
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Type != nil {
				c.Type = *patch.Type
			}
			if patch.Phone != nil {
				c.Phone = *patch.Phone
			}
			if patch.Email != nil {
				c.Email = *patch.Email
			}
			if patch.AssignedPropertyIDs != nil {
				c.AssignedPropertyIDs = *patch.AssignedPropertyIDs
			}
			c.UpdatedAt = time.Now().UTC()
			updated = *c
			return nil
		}
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(r.events, "customer", "updated", id)
	return &updated, nil
}

func (r *CustomerRepository) Delete(id string) error {
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Customers {
			if db.Customers[i].ID == id {
				db.Customers = append(db.Customers[:i], db.Customers[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("customer deleted", slog.String("customer_id", id))
	publish(r.events, "customer", "deleted", id)
	return nil
}
