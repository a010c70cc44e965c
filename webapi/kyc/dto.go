package kyc

// SubmitInput represents the request body for submitting a KYC document.
type SubmitInput struct {
	Type    string `json:"type" validate:"required,oneof=id_proof address_proof photo"`
	FileRef string `json:"file_ref" validate:"required,max=255"`
}

// ReviewInput represents the request body for a review decision.
type ReviewInput struct {
	Status string `json:"status" validate:"required,oneof=verified rejected"`
	Note   string `json:"note,omitempty" validate:"max=255"`
}
