package analysis

import (
	"strconv"
	"time"
)

type Category string

const (
	CategoryFinancial  Category = "Financial"
	CategoryGovernment Category = "Government"
	CategoryHealth     Category = "Health"
	CategoryPersonal   Category = "Personal"
	CategoryVehicle    Category = "Vehicle"
)

// Categories lists every category a Record may carry.
var Categories = []Category{
	CategoryFinancial,
	CategoryGovernment,
	CategoryHealth,
	CategoryPersonal,
	CategoryVehicle,
}

type DocumentType string

const (
	DocumentTypeBill        DocumentType = "bill"
	DocumentTypeID          DocumentType = "id"
	DocumentTypeCertificate DocumentType = "certificate"
	DocumentTypeMedicine    DocumentType = "medicine"
	DocumentTypeInsurance   DocumentType = "insurance"
	DocumentTypeVehicle     DocumentType = "vehicle"
	DocumentTypeWarranty    DocumentType = "warranty"
	DocumentTypeOther       DocumentType = "other"
)

// DocumentTypes lists every document type a Record may carry.
var DocumentTypes = []DocumentType{
	DocumentTypeBill,
	DocumentTypeID,
	DocumentTypeCertificate,
	DocumentTypeMedicine,
	DocumentTypeInsurance,
	DocumentTypeVehicle,
	DocumentTypeWarranty,
	DocumentTypeOther,
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

const (
	DefaultSummary  = "Document uploaded"
	DefaultProvider = "Unknown"
)

// Record is the normalized result of document analysis. Both the AI path and
// the local fallback produce it, and Category and DocumentType are always
// members of their fixed sets.
type Record struct {
	DocumentType DocumentType `json:"documentType"`
	Category     Category     `json:"category"`
	Summary      string       `json:"summary"`
	Provider     string       `json:"provider"`
	IDNumber     *string      `json:"idNumber"`
	Amount       *float64     `json:"amount"`
	IssueDate    *time.Time   `json:"issueDate"`
	DueDate      *time.Time   `json:"dueDate"`
	ExpiryDate   *time.Time   `json:"expiryDate"`
}

// Candidate converts the record back into the loose map form accepted by
// Sanitize.
func (r Record) Candidate() map[string]any {
	c := map[string]any{
		"documentType": string(r.DocumentType),
		"category":     string(r.Category),
		"summary":      r.Summary,
		"provider":     r.Provider,
		"idNumber":     nil,
		"amount":       nil,
		"issueDate":    nil,
		"dueDate":      nil,
		"expiryDate":   nil,
	}
	if r.IDNumber != nil {
		c["idNumber"] = *r.IDNumber
	}
	if r.Amount != nil {
		c["amount"] = *r.Amount
	}
	for key, d := range map[string]*time.Time{
		"issueDate":  r.IssueDate,
		"dueDate":    r.DueDate,
		"expiryDate": r.ExpiryDate,
	} {
		if d != nil {
			c[key] = d.Format(time.RFC3339Nano)
		}
	}
	return c
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

func (t DocumentType) Valid() bool {
	for _, v := range DocumentTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
