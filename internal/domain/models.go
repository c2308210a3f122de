package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an account in the procurement system.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	Department   string    `db:"department" json:"department"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CommodityGroup is one entry of the fixed commodity-group catalog.
type CommodityGroup struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Category    string    `db:"category" json:"category"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Request is a procurement request with its order lines.
type Request struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	RequestorID      uuid.UUID       `db:"requestor_id" json:"requestor_id"`
	Title            string          `db:"title" json:"title"`
	VendorName       string          `db:"vendor_name" json:"vendor_name"`
	VatID            string          `db:"vat_id" json:"vat_id"`
	Department       string          `db:"department" json:"department"`
	CommodityGroupID *uuid.UUID      `db:"commodity_group_id" json:"commodity_group_id,omitempty"`
	TotalCost        decimal.Decimal `db:"total_cost" json:"total_cost"`
	Status           RequestStatus   `db:"status" json:"status"`
	Notes            string          `db:"notes" json:"notes"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`

	OrderLines []OrderLine `db:"-" json:"order_lines,omitempty"`
}

// OrderLine is a single position of a procurement request.
type OrderLine struct {
	ID                  uuid.UUID        `db:"id" json:"id"`
	RequestID           uuid.UUID        `db:"request_id" json:"request_id"`
	Position            int              `db:"position" json:"position"`
	LineType            LineType         `db:"line_type" json:"line_type"`
	Description         string           `db:"description" json:"description"`
	DetailedDescription string           `db:"detailed_description" json:"detailed_description"`
	UnitPrice           decimal.Decimal  `db:"unit_price" json:"unit_price"`
	Amount              decimal.Decimal  `db:"amount" json:"amount"`
	Unit                string           `db:"unit" json:"unit"`
	DiscountPercent     *decimal.Decimal `db:"discount_percent" json:"discount_percent,omitempty"`
	DiscountAmount      *decimal.Decimal `db:"discount_amount" json:"discount_amount,omitempty"`
	TotalPrice          decimal.Decimal  `db:"total_price" json:"total_price"`
	CreatedAt           time.Time        `db:"created_at" json:"created_at"`
}

// StatusHistory records a single status change of a request.
type StatusHistory struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	RequestID  uuid.UUID     `db:"request_id" json:"request_id"`
	FromStatus RequestStatus `db:"from_status" json:"from_status"`
	ToStatus   RequestStatus `db:"to_status" json:"to_status"`
	ChangedBy  uuid.UUID     `db:"changed_by" json:"changed_by"`
	Comment    string        `db:"comment" json:"comment"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// Attachment is an offer document stored in object storage and linked
// to a request.
type Attachment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RequestID   uuid.UUID `db:"request_id" json:"request_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FileType    FileType  `db:"file_type" json:"file_type"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	StorageKey  string    `db:"storage_key" json:"storage_key"`
	UploadedBy  uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
