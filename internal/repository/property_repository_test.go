package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(t.TempDir(), nil)
}

func validProperty() domain.Property {
	return domain.Property{
		Name:     "Al Bidaya Villa 3",
		Type:     "villa",
		Location: "Muscat",
		Price:    85000,
		Area:     420,
	}
}

func TestPropertyCreateDefaults(t *testing.T) {
	repo := NewPropertyRepository(newTestStore(t), &idgen.Sequence{Prefix: "prop"}, nil, nil)

	p, err := repo.Create(validProperty())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID != "prop-1" {
		t.Errorf("expected generated id, got %q", p.ID)
	}
	if p.Status != "available" {
		t.Errorf("expected default status available, got %q", p.Status)
	}
	if p.Images == nil || p.Features == nil {
		t.Errorf("images and features must default to empty slices")
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("createdAt and updatedAt must match on create")
	}
}

func TestPropertyCreateAggregatesViolations(t *testing.T) {
	repo := NewPropertyRepository(newTestStore(t), &idgen.Sequence{Prefix: "prop"}, nil, nil)

	_, err := repo.Create(domain.Property{Price: -5})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	msg := verr.Error()
	for _, want := range []string{
		"Property name is required",
		"Property type is required",
		"Location is required",
		"Price must be greater than 0",
		"Area must be greater than 0",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing violation %q", msg, want)
		}
	}
	if !strings.Contains(msg, ", ") {
		t.Errorf("violations should be comma-joined, got %q", msg)
	}
}

func TestPropertyUpdateMergesPatch(t *testing.T) {
	repo := NewPropertyRepository(newTestStore(t), &idgen.Sequence{Prefix: "prop"}, nil, nil)
	created, err := repo.Create(validProperty())
	if err != nil {
		t.Fatal(err)
	}

	status := "rented"
	price := 90000.0
	updated, err := repo.Update(created.ID, domain.PropertyPatch{Status: &status, Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != "rented" || updated.Price != 90000 {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Name != created.Name {
		t.Errorf("untouched fields must survive, got name %q", updated.Name)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt must advance")
	}
}

func TestPropertyUpdateUnknownID(t *testing.T) {
	repo := NewPropertyRepository(newTestStore(t), &idgen.Sequence{Prefix: "prop"}, nil, nil)

	name := "x"
	_, err := repo.Update("missing", domain.PropertyPatch{Name: &name})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPropertyDeleteTwice(t *testing.T) {
	repo := NewPropertyRepository(newTestStore(t), &idgen.Sequence{Prefix: "prop"}, nil, nil)
	created, err := repo.Create(validProperty())
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(created.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := repo.Delete(created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}

	list, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}
