package repository

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/idgen"
)

func validReceipt() domain.Receipt {
	return domain.Receipt{
		Type:          "rent",
		Amount:        250,
		PaidBy:        "Fatma Al-Harthy",
		PaymentMethod: "cash",
	}
}

func TestNextReceiptNumber(t *testing.T) {
	cases := []struct {
		name     string
		receipts []domain.Receipt
		want     string
	}{
		{"empty", nil, "TPL-0001"},
		{"sequential", []domain.Receipt{{ReceiptNo: "TPL-0001"}, {ReceiptNo: "TPL-0002"}}, "TPL-0003"},
		{"gap", []domain.Receipt{{ReceiptNo: "TPL-0037"}}, "TPL-0038"},
		{"ignores malformed", []domain.Receipt{{ReceiptNo: "TPL-0005"}, {ReceiptNo: "INV-99"}, {ReceiptNo: ""}}, "TPL-0006"},
		{"past four digits", []domain.Receipt{{ReceiptNo: "TPL-9999"}}, "TPL-10000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextReceiptNumber(tc.receipts); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReceiptCreateAssignsSequence(t *testing.T) {
	repo := NewReceiptRepository(newTestStore(t), &idgen.Sequence{Prefix: "rcpt"}, nil, nil)

	first, err := repo.Create(validReceipt())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.ReceiptNo != "TPL-0001" {
		t.Errorf("expected TPL-0001, got %q", first.ReceiptNo)
	}

	second, err := repo.Create(validReceipt())
	if err != nil {
		t.Fatal(err)
	}
	if second.ReceiptNo != "TPL-0002" {
		t.Errorf("expected TPL-0002, got %q", second.ReceiptNo)
	}
}

func TestReceiptCreateIgnoresCallerNumber(t *testing.T) {
	repo := NewReceiptRepository(newTestStore(t), &idgen.Sequence{Prefix: "rcpt"}, nil, nil)

	draft := validReceipt()
	draft.ReceiptNo = "TPL-9000"
	created, err := repo.Create(draft)
	if err != nil {
		t.Fatal(err)
	}
	if created.ReceiptNo != "TPL-0001" {
		t.Errorf("caller receipt number must be ignored, got %q", created.ReceiptNo)
	}
}

func TestReceiptCreateDefaultsDate(t *testing.T) {
	repo := NewReceiptRepository(newTestStore(t), &idgen.Sequence{Prefix: "rcpt"}, nil, nil)

	created, err := repo.Create(validReceipt())
	if err != nil {
		t.Fatal(err)
	}
	if created.Date != time.Now().UTC().Format(domain.DateOnly) {
		t.Errorf("expected today's date, got %q", created.Date)
	}
}

func TestReceiptCreateValidation(t *testing.T) {
	repo := NewReceiptRepository(newTestStore(t), &idgen.Sequence{Prefix: "rcpt"}, nil, nil)

	_, err := repo.Create(domain.Receipt{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msg := verr.Error()
	for _, want := range []string{
		"Receipt type is required",
		"Amount must be greater than 0",
		"Paid by is required",
		"Payment method is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestReceiptNumberImmutableOnUpdate(t *testing.T) {
	repo := NewReceiptRepository(newTestStore(t), &idgen.Sequence{Prefix: "rcpt"}, nil, nil)

	created, err := repo.Create(validReceipt())
	if err != nil {
		t.Fatal(err)
	}

	amount := 999.0
	updated, err := repo.Update(created.ID, domain.ReceiptPatch{Amount: &amount})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ReceiptNo != created.ReceiptNo {
		t.Errorf("receipt number changed from %q to %q", created.ReceiptNo, updated.ReceiptNo)
	}
	if updated.Amount != 999 {
		t.Errorf("amount not updated: %v", updated.Amount)
	}
}
