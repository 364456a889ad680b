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

// PropertyRepository implements domain.PropertyRepository over the JSON store.
type PropertyRepository struct {
	store  *store.Store
	ids    idgen.Generator
	events events.Publisher
	logger *slog.Logger
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(st *store.Store, ids idgen.Generator, pub events.Publisher, logger *slog.Logger) *PropertyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PropertyRepository{store: st, ids: ids, events: pub, logger: logger}
}

// List returns all properties in insertion order.
func (r *PropertyRepository) List() ([]domain.Property, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return db.Properties, nil
}

// Get returns one property by ID.
func (r *PropertyRepository) Get(id string) (*domain.Property, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Properties {
		if db.Properties[i].ID == id {
			p := db.Properties[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
}

// Create validates the draft, fills server-assigned fields and appends it.
// All violations are reported together.
func (r *PropertyRepository) Create(draft domain.Property) (*domain.Property, error) {
	var violations []string
	if strings.TrimSpace(draft.Name) == "" {
		violations = append(violations, "Property name is required")
	}
	if draft.Type == "" {
		violations = append(violations, "Property type is required")
	}
	if strings.TrimSpace(draft.Location) == "" {
		violations = append(violations, "Location is required")
	}
	if draft.Price <= 0 {
		violations = append(violations, "Price must be greater than 0")
	}
	if draft.Area <= 0 {
		violations = append(violations, "Area must be greater than 0")
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
	if draft.Status == "" {
		draft.Status = "available"
	}
	if draft.Images == nil {
		draft.Images = []string{}
	}
	if draft.Features == nil {
		draft.Features = []string{}
	}

	err := r.store.Update(func(db *domain.Database) error {
		db.Properties = append(db.Properties, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("property created", slog.String("property_id", draft.ID))
	publish(r.events, "property", "created", draft.ID)
	return &draft, nil
}

// Update shallow-merges the patch onto the stored record. The ID never moves.
func (r *PropertyRepository) Update(id string, patch domain.PropertyPatch) (*domain.Property, error) {
	var updated domain.Property
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Properties {
			if db.Properties[i].ID != id {
				continue
			}
			p := &db.Properties[i]
			if patch.Name != nil {
				p.Name = *patch.Name
			}
			if patch.Type != nil {
				p.Type = *patch.Type
			}
			if patch.Status != nil {
				p.Status = *patch.Status
			}
			if patch.Location != nil {
				p.Location = *patch.Location
			}
			if patch.Price != nil {
				p.Price = *patch.Price
			}
			if patch.Area != nil {
				p.Area = *patch.Area
			}
			if patch.Description != nil {
				p.Description = *patch.Description
			}
			if patch.Images != nil {
				p.Images = *patch.Images
			}
			if patch.Features != nil {
				p.Features = *patch.Features
			}
			p.UpdatedAt = time.Now().UTC()
			updated = *p
			return nil
		}
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(r.events, "property", "updated", id)
	return &updated, nil
}

// Delete removes one property by ID. A missing ID is an error.
func (r *PropertyRepository) Delete(id string) error {
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Properties {
			if db.Properties[i].ID == id {
				db.Properties = append(db.Properties[:i], db.Properties[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("property deleted", slog.String("property_id", id))
	publish(r.events, "property", "deleted", id)
	return nil
}
