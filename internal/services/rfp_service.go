package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RfpStore is the persistence surface for the RFP workflow, including the
// vendor reads and writes done by the send workflow and the counters behind
// the dashboard.
type RfpStore interface {
	ListRfps() []*Rfp
	GetRfp(id string) *Rfp
	InsertRfp(r *Rfp)
	UpdateRfp(r *Rfp) bool
	DeleteRfp(id string) bool
	GetVendor(id string) *Vendor
	UpdateVendor(v *Vendor) bool
	ListVendors() []*Vendor
	ListProposals() []*Proposal
}

// RfpMailer delivers an RFP invitation to one vendor.
type RfpMailer interface {
	SendRfp(ctx context.Context, vendor *Vendor, rfp *Rfp) error
}

// RfpService owns RFP CRUD, the send-to-vendors workflow and the status
// state machine. Statuses are monotonic; nothing here or elsewhere downgrades
// one.
type RfpService struct {
	store  RfpStore
	mailer RfpMailer
	now    func() time.Time
	newID  func() string
	log    *zap.Logger
}

func NewRfpService(store RfpStore, mailer RfpMailer, log *zap.Logger) *RfpService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RfpService{
		store:  store,
		mailer: mailer,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		log:    log,
	}
}

// List returns all RFPs, newest first.
func (s *RfpService) List() []*Rfp { return s.store.ListRfps() }

// Recent returns up to n of the newest RFPs.
func (s *RfpService) Recent(n int) []*Rfp {
	rfps := s.store.ListRfps()
	if len(rfps) > n {
		rfps = rfps[:n]
	}
	return rfps
}

func (s *RfpService) Get(id string) (*Rfp, error) {
	rfp := s.store.GetRfp(id)
	if rfp == nil {
		return nil, NewNotFoundError("RFP not found")
	}
	return rfp, nil
}

// Create validates a draft and stores it with status "draft".
func (s *RfpService) Create(draft RfpDraft) (*Rfp, error) {
	if draft.Title == "" {
		return nil, NewInvalidError("title is required")
	}
	for i, it := range draft.Items {
		if it.Name == "" {
			return nil, NewInvalidError(fmt.Sprintf("item %d: name is required", i))
		}
		if it.Qty <= 0 {
			return nil, NewInvalidError(fmt.Sprintf("item %d: qty must be positive", i))
		}
	}
	currency := draft.Currency
	if currency == "" {
		currency = "USD"
	}
	rfp := &Rfp{
		ID:                s.newID(),
		Title:             draft.Title,
		Items:             emptyIfNilItems(draft.Items),
		TotalBudget:       draft.TotalBudget,
		Currency:          currency,
		DeliveryDays:      draft.DeliveryDays,
		PaymentTerms:      draft.PaymentTerms,
		Warranty:          draft.Warranty,
		Notes:             draft.Notes,
		MandatoryCriteria: emptyIfNil(draft.MandatoryCriteria),
		OptionalCriteria:  emptyIfNil(draft.OptionalCriteria),
		Status:            StatusDraft,
		SentVendorIDs:     []string{},
		CreatedAt:         s.now(),
	}
	s.store.InsertRfp(rfp)
	return rfp, nil
}

// Update applies a partial JSON patch. The id and creation time are
// immutable, sentVendorIds only grows (union), and the status may only move
// forward through the state machine.
func (s *RfpService) Update(id string, patch map[string]any) (*Rfp, error) {
	rfp := s.store.GetRfp(id)
	if rfp == nil {
		return nil, NewNotFoundError("RFP not found")
	}
	prev := *rfp
	// Unmarshal below decodes into rfp's existing slices in place, so keep
	// an isolated copy of the ids for the union.
	prevSent := append([]string(nil), rfp.SentVendorIDs...)

	b, err := json.Marshal(patch)
	if err != nil {
		return nil, NewInvalidError(err.Error())
	}
	if err := json.Unmarshal(b, rfp); err != nil {
		return nil, NewInvalidError(err.Error())
	}

	rfp.ID = prev.ID
	rfp.CreatedAt = prev.CreatedAt
	if _, ok := patch["status"]; ok {
		if !ValidStatus(rfp.Status) {
			return nil, NewInvalidError("invalid status")
		}
		if statusRank[rfp.Status] < statusRank[prev.Status] {
			return nil, NewInvalidError("status cannot move backwards")
		}
	} else {
		rfp.Status = prev.Status
	}
	rfp.SentVendorIDs = unionStrings(prevSent, rfp.SentVendorIDs)

	if !s.store.UpdateRfp(rfp) {
		return nil, NewNotFoundError("RFP not found")
	}
	return rfp, nil
}

func (s *RfpService) Delete(id string) error {
	if !s.store.DeleteRfp(id) {
		return NewNotFoundError("RFP not found")
	}
	return nil
}

// Send emails the RFP to each resolvable vendor, records the contact time on
// the vendors, unions the vendor ids into sentVendorIds and advances the RFP
// to "sent". It returns how many deliveries succeeded out of how many valid
// vendors were addressed.
func (s *RfpService) Send(ctx context.Context, rfpID string, vendorIDs []string) (sent, total int, err error) {
	rfp := s.store.GetRfp(rfpID)
	if rfp == nil {
		return 0, 0, NewNotFoundError("RFP not found")
	}
	if len(vendorIDs) == 0 {
		return 0, 0, NewInvalidError("select at least one vendor")
	}

	vendors := make([]*Vendor, 0, len(vendorIDs))
	for _, id := range vendorIDs {
		if v := s.store.GetVendor(id); v != nil {
			vendors = append(vendors, v)
		}
	}
	if len(vendors) == 0 {
		return 0, 0, NewInvalidError("no valid vendors found")
	}

	now := s.now()
	for _, v := range vendors {
		if err := s.mailer.SendRfp(ctx, v, rfp); err != nil {
			s.log.Warn("failed to send RFP email",
				zap.String("rfp_id", rfp.ID),
				zap.String("vendor_email", v.Email),
				zap.Error(err))
			continue
		}
		sent++
		v.LastContactedAt = &now
		s.store.UpdateVendor(v)
	}

	rfp.SentVendorIDs = unionStrings(rfp.SentVendorIDs, vendorIDs)
	if statusRank[StatusSent] > statusRank[rfp.Status] {
		rfp.Status = StatusSent
	}
	s.store.UpdateRfp(rfp)

	return sent, len(vendors), nil
}

// Stats assembles the dashboard counters. An RFP counts as active while it
// is out with vendors or collecting proposals.
func (s *RfpService) Stats() DashboardStats {
	rfps := s.store.ListRfps()
	active := 0
	for _, r := range rfps {
		if r.Status == StatusSent || r.Status == StatusReceived {
			active++
		}
	}
	return DashboardStats{
		TotalRfps:         len(rfps),
		ActiveRfps:        active,
		TotalVendors:      len(s.store.ListVendors()),
		ProposalsReceived: len(s.store.ListProposals()),
	}
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilItems(items []RfpItem) []RfpItem {
	if items == nil {
		return []RfpItem{}
	}
	return items
}
