package repository

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/idgen"
)

func validContract() domain.RentalContract {
	return domain.RentalContract{
		LandlordName:     "Telal Al-Bidaya LLC",
		TenantName:       "Hamed Al-Balushi",
		TenantIDPassport: "OM1234567",
		TenantPhone:      "+968 9123 4567",
		ValidFrom:        "2026-01-01",
		ValidTo:          "2026-12-31",
		MonthlyRent:      350,
	}
}

func TestNewContractNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^RC-20260315-\d{3}$`)

	for i := 0; i < 20; i++ {
		num := NewContractNumber(now)
		if !pattern.MatchString(num) {
			t.Fatalf("contract number %q does not match RC-YYYYMMDD-###", num)
		}
	}
}

func TestContractCreateDefaults(t *testing.T) {
	repo := NewRentalContractRepository(newTestStore(t), &idgen.Sequence{Prefix: "rc"}, nil, nil)

	c, err := repo.Create(validContract())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if c.Type != "rental" {
		t.Errorf("expected default type rental, got %q", c.Type)
	}
	if c.Status != "draft" {
		t.Errorf("expected default status draft, got %q", c.Status)
	}
	if !strings.HasPrefix(c.ContractNumber, "RC-") {
		t.Errorf("expected RC- contract number, got %q", c.ContractNumber)
	}
}

func TestContractCreateRejectsInvertedDates(t *testing.T) {
	repo := NewRentalContractRepository(newTestStore(t), &idgen.Sequence{Prefix: "rc"}, nil, nil)

	draft := validContract()
	draft.ValidFrom = "2026-12-31"
	draft.ValidTo = "2026-01-01"

	_, err := repo.Create(draft)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "Contract end date must be after start date") {
		t.Errorf("unexpected message %q", verr.Error())
	}
}

func TestContractCreateAggregatesViolations(t *testing.T) {
	repo := NewRentalContractRepository(newTestStore(t), &idgen.Sequence{Prefix: "rc"}, nil, nil)

	_, err := repo.Create(domain.RentalContract{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msg := verr.Error()
	for _, want := range []string{
		"Landlord name is required",
		"Tenant name is required",
		"Tenant ID/Passport is required",
		"Tenant phone is required",
		"Contract start date is required",
		"Contract end date is required",
		"Monthly rent must be greater than 0",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestContractUpdateRevalidatesDates(t *testing.T) {
	repo := NewRentalContractRepository(newTestStore(t), &idgen.Sequence{Prefix: "rc"}, nil, nil)
	created, err := repo.Create(validContract())
	if err != nil {
		t.Fatal(err)
	}

	badTo := "2025-06-01"
	_, err = repo.Update(created.ID, domain.RentalContractPatch{ValidTo: &badTo})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// The failed update must not have persisted.
	stored, err := repo.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ValidTo != created.ValidTo {
		t.Errorf("failed update leaked: validTo %q", stored.ValidTo)
	}
}
