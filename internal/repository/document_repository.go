package repository

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/store"
)

// DocumentRepository implements domain.DocumentRepository over the JSON store.
type DocumentRepository struct {
	store  *store.Store
	ids    idgen.Generator
	events events.Publisher
	logger *slog.Logger
}

func NewDocumentRepository(st *store.Store, ids idgen.Generator, pub events.Publisher, logger *slog.Logger) *DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentRepository{store: st, ids: ids, events: pub, logger: logger}
}

func (r *DocumentRepository) List() ([]domain.Document, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return db.Documents, nil
}

func (r *DocumentRepository) Get(id string) (*domain.Document, error) {
	db, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			d := db.Documents[i]
			return &d, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (r *DocumentRepository) Create(draft domain.Document) (*domain.Document, error) {
	var violations []string
	if strings.TrimSpace(draft.Name) == "" {
		violations = append(violations, "Document name is required")
	}
	if draft.Category == "" {
		draft.Category = "other"
	} else if !slices.Contains(domain.DocumentCategories, draft.Category) {
		violations = append(violations, fmt.Sprintf("Category must be one of: %s", strings.Join(domain.DocumentCategories, ", ")))
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
	if draft.UploadDate == "" {
		draft.UploadDate = now.Format(domain.DateOnly)
	}

	err := r.store.Update(func(db *domain.Database) error {
		db.Documents = append(db.Documents, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("document created", slog.String("document_id", draft.ID))
	publish(r.events, "document", "created", draft.ID)
	return &draft, nil
}

func (r *DocumentRepository) Update(id string, patch domain.DocumentPatch) (*domain.Document, error) {
	if patch.Category != nil && !slices.Contains(domain.DocumentCategories, *patch.Category) {
		return nil, domain.NewValidationError([]string{fmt.Sprintf("Category must be one of: %s", strings.Join(domain.DocumentCategories, ", "))})
	}

	var updated domain.Document
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Documents {
			if db.Documents[i].ID != id {
				continue
			}
			d := &db.Documents[i]
			if patch.Name != nil {
				d.Name = *patch.Name
			}
			if patch.Category != nil {
				d.Category = *patch.Category
			}
			if patch.FileType != nil {
				d.FileType = *patch.FileType
			}
			if patch.FileSize != nil {
				d.FileSize = *patch.FileSize
			}
			if patch.FileURL != nil {
				d.FileURL = *patch.FileURL
			}
			if patch.UploadDate != nil {
				d.UploadDate = *patch.UploadDate
			}
			if patch.RelatedID != nil {
				d.RelatedID = *patch.RelatedID
			}
			d.UpdatedAt = time.Now().UTC()
			updated = *d
			return nil
		}
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(r.events, "document", "updated", id)
	return &updated, nil
}

func (r *DocumentRepository) Delete(id string) error {
	err := r.store.Update(func(db *domain.Database) error {
		for i := range db.Documents {
			if db.Documents[i].ID == id {
				db.Documents = append(db.Documents[:i], db.Documents[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("document deleted", slog.String("document_id", id))
	publish(r.events, "document", "deleted", id)
	return nil
}
