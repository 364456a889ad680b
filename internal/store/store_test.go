package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/telalestate/propertydesk/internal/domain"
)

func TestFirstRunInitializesEmptyDatabase(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)

	db, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if db.Properties == nil || len(db.Properties) != 0 {
		t.Fatalf("expected empty properties collection")
	}

	raw, err := os.ReadFile(filepath.Join(dir, "db.json"))
	if err != nil {
		t.Fatalf("expected db.json to be created: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("persisted file is not valid json: %v", err)
	}
	for _, key := range []string{"users", "projects", "properties", "customers", "rentals", "receipts", "contracts", "documents", "rentalContracts", "transactions"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
}

func TestLoadToleratesMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	if err := os.WriteFile(path, []byte(`{"properties":[{"id":"p1","name":"Villa"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, nil)
	db, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(db.Properties) != 1 || db.Properties[0].ID != "p1" {
		t.Fatalf("expected one property, got %+v", db.Properties)
	}
	if db.Customers == nil || db.Receipts == nil {
		t.Fatalf("missing keys should normalize to empty slices")
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "db.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, nil)
	if _, err := s.Load(); err == nil {
		t.Fatalf("expected error for corrupt file")
	} else if !domain.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestUpdatePersistsChanges(t *testing.T) {
	s := New(t.TempDir(), nil)

	err := s.Update(func(db *domain.Database) error {
		db.Customers = append(db.Customers, domain.Customer{ID: "c1", Name: "Salim"})
		return nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	db, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(db.Customers) != 1 || db.Customers[0].Name != "Salim" {
		t.Fatalf("expected customer to persist, got %+v", db.Customers)
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := New(t.TempDir(), nil)

	boom := errors.New("boom")
	err := s.Update(func(db *domain.Database) error {
		db.Customers = append(db.Customers, domain.Customer{ID: "c1"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	db, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(db.Customers) != 0 {
		t.Fatalf("failed update must not persist, got %+v", db.Customers)
	}
}

func TestLegacyCollectionsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	legacy := `{"transactions":[{"id":"t1","custom":"shape"}],"contracts":[{"id":"old-1"}]}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, nil)
	if err := s.Update(func(db *domain.Database) error { return nil }); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Transactions []map[string]any `json:"transactions"`
		Contracts    []map[string]any `json:"contracts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Transactions) != 1 || doc.Transactions[0]["custom"] != "shape" {
		t.Fatalf("legacy transactions must survive writes, got %+v", doc.Transactions)
	}
	if len(doc.Contracts) != 1 {
		t.Fatalf("legacy contracts must survive writes, got %+v", doc.Contracts)
	}
}
