package services

import "time"

// RfpStatus tracks an RFP through its workflow. Transitions are strictly
// forward: draft -> sent -> received -> compared.
type RfpStatus string

const (
	StatusDraft    RfpStatus = "draft"
	StatusSent     RfpStatus = "sent"
	StatusReceived RfpStatus = "received"
	StatusCompared RfpStatus = "compared"
)

var statusRank = map[RfpStatus]int{
	StatusDraft:    0,
	StatusSent:     1,
	StatusReceived: 2,
	StatusCompared: 3,
}

// ValidStatus reports whether s is one of the four workflow statuses.
func ValidStatus(s RfpStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// RfpItem is a single requested line in an RFP.
type RfpItem struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Specs string `json:"specs"`
}

// Rfp is a request for proposal sent to vendors.
type Rfp struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Items             []RfpItem `json:"items"`
	TotalBudget       *float64  `json:"totalBudget"`
	Currency          string    `json:"currency"`
	DeliveryDays      *int      `json:"deliveryDays"`
	PaymentTerms      string    `json:"paymentTerms,omitempty"`
	Warranty          string    `json:"warranty,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	MandatoryCriteria []string  `json:"mandatoryCriteria"`
	OptionalCriteria  []string  `json:"optionalCriteria"`
	Status            RfpStatus `json:"status"`
	SentVendorIDs     []string  `json:"sentVendorIds"`
	CreatedAt         time.Time `json:"createdAt"`
}

// RfpDraft carries the caller-supplied fields of a new RFP. Status, id and
// timestamps are assigned on create.
type RfpDraft struct {
	Title             string    `json:"title"`
	Items             []RfpItem `json:"items"`
	TotalBudget       *float64  `json:"totalBudget"`
	Currency          string    `json:"currency"`
	DeliveryDays      *int      `json:"deliveryDays"`
	PaymentTerms      string    `json:"paymentTerms"`
	Warranty          string    `json:"warranty"`
	Notes             string    `json:"notes"`
	MandatoryCriteria []string  `json:"mandatoryCriteria"`
	OptionalCriteria  []string  `json:"optionalCriteria"`
}

// Vendor is a supplier that can receive RFPs and submit proposals.
type Vendor struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	ContactPerson   string     `json:"contactPerson"`
	Rating          int        `json:"rating"`
	Capabilities    []string   `json:"capabilities"`
	Tags            []string   `json:"tags"`
	LastContactedAt *time.Time `json:"lastContactedAt"`
}

// VendorDraft carries the caller-supplied fields of a new vendor.
type VendorDraft struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	ContactPerson string   `json:"contactPerson"`
	Rating        int      `json:"rating"`
	Capabilities  []string `json:"capabilities"`
	Tags          []string `json:"tags"`
}

// ProposalLineItem is one priced line in a vendor proposal.
type ProposalLineItem struct {
	ItemName     string  `json:"itemName"`
	Qty          int     `json:"qty"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	Warranty     string  `json:"warranty,omitempty"`
	DeliveryDays *int    `json:"deliveryDays"`
}

// Attachment references a document supplied with a proposal.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Proposal is a vendor's reply to an RFP. Proposals are created once and
// never updated in place; VendorName is a snapshot taken at ingest time.
type Proposal struct {
	ID           string             `json:"id"`
	RfpID        string             `json:"rfpId"`
	VendorID     string             `json:"vendorId"`
	VendorName   string             `json:"vendorName"`
	LineItems    []ProposalLineItem `json:"lineItems"`
	TotalPrice   float64            `json:"totalPrice"`
	PaymentTerms string             `json:"paymentTerms,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Attachments  []Attachment       `json:"attachments"`
	ReceivedAt   time.Time          `json:"receivedAt"`
}

// ProposalDraft carries the fields of a proposal prior to id assignment.
type ProposalDraft struct {
	RfpID        string             `json:"rfpId"`
	VendorID     string             `json:"vendorId"`
	VendorName   string             `json:"vendorName"`
	LineItems    []ProposalLineItem `json:"lineItems"`
	TotalPrice   float64            `json:"totalPrice"`
	PaymentTerms string             `json:"paymentTerms"`
	Notes        string             `json:"notes"`
	Attachments  []Attachment       `json:"attachments"`
}

// ProposalScore holds the per-criterion and weighted total scores for one
// proposal within a comparison batch. Scores are relative to the batch, not
// absolute, and are recomputed on every comparison request.
type ProposalScore struct {
	ProposalID        string  `json:"proposalId"`
	VendorName        string  `json:"vendorName"`
	PriceScore        float64 `json:"priceScore"`
	DeliveryScore     float64 `json:"deliveryScore"`
	WarrantyScore     float64 `json:"warrantyScore"`
	CompletenessScore float64 `json:"completenessScore"`
	VendorRatingScore float64 `json:"vendorRatingScore"`
	TotalScore        float64 `json:"totalScore"`
}

// ComparisonResult is the full outcome of comparing an RFP's proposals.
// The caller owns it; nothing here is shared mutable state.
type ComparisonResult struct {
	Scores              []ProposalScore `json:"scores"`
	Summary             string          `json:"summary"`
	RecommendedVendorID string          `json:"recommendedVendorId"`
	Reason              string          `json:"reason"`
}

// DashboardStats summarizes workload for the dashboard endpoint.
type DashboardStats struct {
	TotalRfps         int `json:"totalRfps"`
	ActiveRfps        int `json:"activeRfps"`
	TotalVendors      int `json:"totalVendors"`
	ProposalsReceived int `json:"proposalsReceived"`
}

// InboundEmail is the payload delivered by the inbound mail webhook.
type InboundEmail struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}
