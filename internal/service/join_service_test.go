package service

import (
	"errors"
	"testing"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
)

func TestListReceiptsJoinsReferences(t *testing.T) {
	st := newTestStore(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	err := st.Update(func(db *domain.Database) error {
		db.Customers = []domain.Customer{{ID: "c1", Name: "Maryam"}}
		db.Properties = []domain.Property{{ID: "p1", Name: "Office 14"}}
		db.Projects = []domain.Project{{ID: "pr1", Name: "Telal Phase 1"}}
		db.Receipts = []domain.Receipt{
			{ID: "r-old", ReceiptNo: "TPL-0001", CustomerID: "c1", PropertyID: "p1", ProjectID: "pr1", CreatedAt: base},
			{ID: "r-new", ReceiptNo: "TPL-0002", CustomerID: "ghost", CreatedAt: base.AddDate(0, 0, 3)},
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewJoinService(st, nil)
	joined, err := svc.ListReceipts()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(joined) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(joined))
	}

	// Newest first.
	if joined[0].ID != "r-new" || joined[1].ID != "r-old" {
		t.Errorf("expected newest-first ordering, got %s, %s", joined[0].ID, joined[1].ID)
	}

	resolved := joined[1]
	if resolved.Customer == nil || resolved.Customer.Name != "Maryam" {
		t.Errorf("customer not joined: %+v", resolved.Customer)
	}
	if resolved.Property == nil || resolved.Property.Name != "Office 14" {
		t.Errorf("property not joined: %+v", resolved.Property)
	}
	if resolved.Project == nil || resolved.Project.Name != "Telal Phase 1" {
		t.Errorf("project not joined: %+v", resolved.Project)
	}

	dangling := joined[0]
	if dangling.Customer != nil || dangling.Property != nil || dangling.Project != nil {
		t.Errorf("dangling references must stay nil: %+v", dangling)
	}
}

func TestGetReceiptNotFound(t *testing.T) {
	svc := NewJoinService(newTestStore(t), nil)
	_, err := svc.GetReceipt("missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
