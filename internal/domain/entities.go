package domain

import (
	"encoding/json"
	"time"
)

// DateOnly is the wire format for calendar-date fields (paidUntil, validFrom, ...).
const DateOnly = "2006-01-02"

// Database is the full persisted document. Top-level keys are fixed; a missing
// key in the file decodes as a nil slice and is normalized back to an empty
// array on save. The contracts and transactions collections are legacy data
// carried verbatim so older files round-trip unchanged.
type Database struct {
	Users           []User            `json:"users"`
	Projects        []Project         `json:"projects"`
	Properties      []Property        `json:"properties"`
	Customers       []Customer        `json:"customers"`
	Rentals         []Rental          `json:"rentals"`
	Receipts        []Receipt         `json:"receipts"`
	Contracts       []json.RawMessage `json:"contracts"`
	Documents       []Document        `json:"documents"`
	RentalContracts []RentalContract  `json:"rentalContracts"`
	Transactions    []json.RawMessage `json:"transactions"`
}

// NewDatabase returns an empty database with every collection initialized.
func NewDatabase() *Database {
	return &Database{
		Users:           []User{},
		Projects:        []Project{},
		Properties:      []Property{},
		Customers:       []Customer{},
		Rentals:         []Rental{},
		Receipts:        []Receipt{},
		Contracts:       []json.RawMessage{},
		Documents:       []Document{},
		RentalContracts: []RentalContract{},
		Transactions:    []json.RawMessage{},
	}
}

// Normalize replaces nil collections with empty slices so the persisted
// document always carries every top-level key as an array.
func (d *Database) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Properties == nil {
		d.Properties = []Property{}
	}
	if d.Customers == nil {
		d.Customers = []Customer{}
	}
	if d.Rentals == nil {
		d.Rentals = []Rental{}
	}
	if d.Receipts == nil {
		d.Receipts = []Receipt{}
	}
	if d.Contracts == nil {
		d.Contracts = []json.RawMessage{}
	}
	if d.Documents == nil {
		d.Documents = []Document{}
	}
	if d.RentalContracts == nil {
		d.RentalContracts = []RentalContract{}
	}
	if d.Transactions == nil {
		d.Transactions = []json.RawMessage{}
	}
}

// Property is a unit of real estate under management.
type Property struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`   // villa, apartment, office, shop, land
	Status      string    `json:"status"` // available, rented, sold
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Area        float64   `json:"area"` // square meters
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Customer is a buyer or tenant.
type Customer struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"` // individual, company
	Phone               string    `json:"phone"`
	Email               string    `json:"email,omitempty"`
	AssignedPropertyIDs []string  `json:"assignedPropertyIds"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Receipt records a payment in or out. ReceiptNo is server-assigned in the
// TPL-#### sequence and never changes after creation.
type Receipt struct {
	ID            string    `json:"id"`
	ReceiptNo     string    `json:"receiptNo"`
	Type          string    `json:"type"` // rent, sale, deposit, expense, other
	Amount        float64   `json:"amount"`
	PaidBy        string    `json:"paidBy"`
	CustomerID    string    `json:"customerId,omitempty"`
	PropertyID    string    `json:"propertyId,omitempty"`
	RentalID      string    `json:"rentalId,omitempty"`
	ProjectID     string    `json:"projectId,omitempty"`
	PaymentMethod string    `json:"paymentMethod"` // cash, cheque, transfer, card
	Reference     string    `json:"reference,omitempty"`
	Description   string    `json:"description"`
	Date          string    `json:"date"` // DateOnly
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Rental links a tenant to a property. PaidUntil drives overdue detection;
// the referenced tenant and property are not checked to exist at write time.
type Rental struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	PropertyID  string    `json:"propertyId"`
	MonthlyRent float64   `json:"monthlyRent"`
	PaidUntil   string    `json:"paidUntil"` // DateOnly
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RentalContract is a formal tenancy agreement.
type RentalContract struct {
	ID              string    `json:"id"`
	ContractNumber  string    `json:"contractNumber"` // RC-YYYYMMDD-###
	Type            string    `json:"type"`           // rental
	Status          string    `json:"status"`         // draft, active, expired, terminated
	LandlordName    string    `json:"landlordName"`
	TenantName      string    `json:"tenantName"`
	TenantIDPassport string   `json:"tenantIdPassport"`
	TenantPhone     string    `json:"tenantPhone"`
	PropertyID      string    `json:"propertyId,omitempty"`
	ValidFrom       string    `json:"validFrom"` // DateOnly
	ValidTo         string    `json:"validTo"`   // DateOnly, strictly after ValidFrom
	MonthlyRent     float64   `json:"monthlyRent"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DocumentCategories are the accepted values for Document.Category.
var DocumentCategories = []string{"contracts", "receipts", "identities", "property", "other"}

// Document is metadata for an uploaded file.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	FileType   string    `json:"fileType"`
	FileSize   int64     `json:"fileSize"`
	FileURL    string    `json:"fileUrl"`
	UploadDate string    `json:"uploadDate"` // DateOnly
	RelatedID  string    `json:"relatedId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Project groups properties under a development; only referenced by joins.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a back-office account. The password hash is persisted with the
// record; auth handlers respond with dedicated result types, never a raw User.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Role         string    `json:"role"` // admin, manager, user
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
