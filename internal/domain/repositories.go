package domain

// PropertyPatch carries an update payload for a property. Nil fields are
// left untouched by the merge.
type PropertyPatch struct {
	Name        *string   `json:"name"`
	Type        *string   `json:"type"`
	Status      *string   `json:"status"`
	Location    *string   `json:"location"`
	Price       *float64  `json:"price"`
	Area        *float64  `json:"area"`
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`
	Features    *[]string `json:"features"`
}

type CustomerPatch struct {
	Name                *string   `json:"name"`
	Type                *string   `json:"type"`
	Phone               *string   `json:"phone"`
	Email               *string   `json:"email"`
	AssignedPropertyIDs *[]string `json:"assignedPropertyIds"`
}

// ReceiptPatch never carries receiptNo: the number is immutable once assigned.
type ReceiptPatch struct {
	Type          *string  `json:"type"`
	Amount        *float64 `json:"amount"`
	PaidBy        *string  `json:"paidBy"`
	CustomerID    *string  `json:"customerId"`
	PropertyID    *string  `json:"propertyId"`
	RentalID      *string  `json:"rentalId"`
	ProjectID     *string  `json:"projectId"`
	PaymentMethod *string  `json:"paymentMethod"`
	Reference     *string  `json:"reference"`
	Description   *string  `json:"description"`
	Date          *string  `json:"date"`
}

type RentalPatch struct {
	TenantID    *string  `json:"tenantId"`
	PropertyID  *string  `json:"propertyId"`
	MonthlyRent *float64 `json:"monthlyRent"`
	PaidUntil   *string  `json:"paidUntil"`
}

type RentalContractPatch struct {
	Type             *string  `json:"type"`
	Status           *string  `json:"status"`
	LandlordName     *string  `json:"landlordName"`
	TenantName       *string  `json:"tenantName"`
	TenantIDPassport *string  `json:"tenantIdPassport"`
	TenantPhone      *string  `json:"tenantPhone"`
	PropertyID       *string  `json:"propertyId"`
	ValidFrom        *string  `json:"validFrom"`
	ValidTo          *string  `json:"validTo"`
	MonthlyRent      *float64 `json:"monthlyRent"`
}

type DocumentPatch struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	FileType   *string `json:"fileType"`
	FileSize   *int64  `json:"fileSize"`
	FileURL    *string `json:"fileUrl"`
	UploadDate *string `json:"uploadDate"`
	RelatedID  *string `json:"relatedId"`
}

// PropertyRepository defines data access for properties.
type PropertyRepository interface {
	List() ([]Property, error)
	Get(id string) (*Property, error)
	Create(draft Property) (*Property, error)
	Update(id string, patch PropertyPatch) (*Property, error)
	Delete(id string) error
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	List() ([]Customer, error)
	Get(id string) (*Customer, error)
	Create(draft Customer) (*Customer, error)
	Update(id string, patch CustomerPatch) (*Customer, error)
	Delete(id string) error
}

// ReceiptRepository defines data access for receipts.
type ReceiptRepository interface {
	List() ([]Receipt, error)
	Get(id string) (*Receipt, error)
	Create(draft Receipt) (*Receipt, error)
	Update(id string, patch ReceiptPatch) (*Receipt, error)
	Delete(id string) error
}

// RentalRepository defines data access for rentals.
type RentalRepository interface {
	List() ([]Rental, error)
	Get(id string) (*Rental, error)
	Create(draft Rental) (*Rental, error)
	Update(id string, patch RentalPatch) (*Rental, error)
	Delete(id string) error
}

// RentalContractRepository defines data access for rental contracts.
type RentalContractRepository interface {
	List() ([]RentalContract, error)
	Get(id string) (*RentalContract, error)
	Create(draft RentalContract) (*RentalContract, error)
	Update(id string, patch RentalContractPatch) (*RentalContract, error)
	Delete(id string) error
}

// DocumentRepository defines data access for documents.
type DocumentRepository interface {
	List() ([]Document, error)
	Get(id string) (*Document, error)
	Create(draft Document) (*Document, error)
	Update(id string, patch DocumentPatch) (*Document, error)
	Delete(id string) error
}

// UserRepository defines data access for back-office users.
type UserRepository interface {
	Create(user *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(user *User) error
}
