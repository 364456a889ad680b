package service

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/store"
)

// JoinedReceipt is a receipt enriched with its referenced records. Unresolved
// references stay nil; a dangling foreign key is missing optional data, not
// an error.
type JoinedReceipt struct {
	domain.Receipt
	Customer *domain.Customer `json:"customer,omitempty"`
	Property *domain.Property `json:"property,omitempty"`
	Project  *domain.Project  `json:"project,omitempty"`
}

// JoinService resolves foreign-key references at read time. Each call works
// on one loaded snapshot and builds ID indexes once instead of rescanning
// the collections per reference.
type JoinService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewJoinService(st *store.Store, logger *slog.Logger) *JoinService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JoinService{store: st, logger: logger}
}

// snapshotIndex maps record IDs to positions within one snapshot.
type snapshotIndex struct {
	db         *domain.Database
	customers  map[string]int
	properties map[string]int
	projects   map[string]int
}

func indexSnapshot(db *domain.Database) *snapshotIndex {
	idx := &snapshotIndex{
		db:         db,
		customers:  make(map[string]int, len(db.Customers)),
		properties: make(map[string]int, len(db.Properties)),
		projects:   make(map[string]int, len(db.Projects)),
	}
	for i := range db.Customers {
		idx.customers[db.Customers[i].ID] = i
	}
	for i := range db.Properties {
		idx.properties[db.Properties[i].ID] = i
	}
	for i := range db.Projects {
		idx.projects[db.Projects[i].ID] = i
	}
	return idx
}

func (idx *snapshotIndex) join(r domain.Receipt) JoinedReceipt {
	out := JoinedReceipt{Receipt: r}
	if r.CustomerID != "" {
		if i, ok := idx.customers[r.CustomerID]; ok {
			c := idx.db.Customers[i]
			out.Customer = &c
		}
	}
	if r.PropertyID != "" {
		if i, ok := idx.properties[r.PropertyID]; ok {
			p := idx.db.Properties[i]
			out.Property = &p
		}
	}
	if r.ProjectID != "" {
		if i, ok := idx.projects[r.ProjectID]; ok {
			p := idx.db.Projects[i]
			out.Project = &p
		}
	}
	return out
}

// ListReceipts returns every receipt with customer and property attached,
// newest first.
func (s *JoinService) ListReceipts() ([]JoinedReceipt, error) {
	db, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	idx := indexSnapshot(db)

	out := make([]JoinedReceipt, 0, len(db.Receipts))
	for _, r := range db.Receipts {
		out = append(out, idx.join(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetReceipt returns one receipt with its references attached.
func (s *JoinService) GetReceipt(id string) (*JoinedReceipt, error) {
	db, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range db.Receipts {
		if db.Receipts[i].ID == id {
			joined := indexSnapshot(db).join(db.Receipts[i])
			return &joined, nil
		}
	}
	return nil, fmt.Errorf("receipt %s: %w", id, domain.ErrNotFound)
}
