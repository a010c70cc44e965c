// Package kyc defines KYC document metadata. The upload pipeline stores the
// bytes elsewhere; this package tracks only the reference and review state.
package kyc

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain"
)

// DocType enumerates accepted identity documents.
type DocType string

const (
	DocTypeIDProof      DocType = "id_proof"
	DocTypeAddressProof DocType = "address_proof"
	DocTypePhoto        DocType = "photo"
)

// Status enumerates the review lifecycle.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Document is one submitted KYC artifact.
type Document struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	BankID     uuid.UUID
	Type       DocType
	FileRef    string // opaque reference into the file store
	Status     Status
	ReviewNote string
	ReviewedBy *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New records a freshly submitted document pending review.
func New(ownerID, bankID uuid.UUID, docType DocType, fileRef string) (*Document, error) {
	switch docType {
	case DocTypeIDProof, DocTypeAddressProof, DocTypePhoto:
	default:
		return nil, domain.Ef(domain.KindValidation, "unknown document type %q", docType)
	}
	if fileRef == "" {
		return nil, domain.E(domain.KindValidation, "file reference cannot be empty")
	}
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		BankID:    bankID,
		Type:      docType,
		FileRef:   fileRef,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
