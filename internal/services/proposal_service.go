package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProposalStore is the persistence surface for proposal creation and the
// inbound email workflow.
type ProposalStore interface {
	ListProposals() []*Proposal
	ListProposalsByRfp(rfpID string) []*Proposal
	GetProposal(id string) *Proposal
	InsertProposal(p *Proposal)
	GetRfp(id string) *Rfp
	UpdateRfp(r *Rfp) bool
	ListRfps() []*Rfp
	ListVendors() []*Vendor
}

// ProposalService owns proposal creation and the webhook ingest path.
// Proposals are write-once: there is no update or delete.
type ProposalService struct {
	store  ProposalStore
	intake *IntakeService
	now    func() time.Time
	newID  func() string
	log    *zap.Logger
}

func NewProposalService(store ProposalStore, intake *IntakeService, log *zap.Logger) *ProposalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProposalService{
		store:  store,
		intake: intake,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		log:    log,
	}
}

func (s *ProposalService) List() []*Proposal { return s.store.ListProposals() }

func (s *ProposalService) ListByRfp(rfpID string) []*Proposal {
	return s.store.ListProposalsByRfp(rfpID)
}

func (s *ProposalService) Get(id string) (*Proposal, error) {
	p := s.store.GetProposal(id)
	if p == nil {
		return nil, NewNotFoundError("proposal not found")
	}
	return p, nil
}

// Create stores a new proposal. The first proposal arriving for an RFP that
// is out with vendors moves that RFP from "sent" to "received".
func (s *ProposalService) Create(draft ProposalDraft) (*Proposal, error) {
	rfp := s.store.GetRfp(draft.RfpID)
	if rfp == nil {
		return nil, NewNotFoundError("RFP not found")
	}
	if draft.VendorID == "" {
		return nil, NewInvalidError("vendorId is required")
	}
	p := &Proposal{
		ID:           s.newID(),
		RfpID:        draft.RfpID,
		VendorID:     draft.VendorID,
		VendorName:   draft.VendorName,
		LineItems:    draft.LineItems,
		TotalPrice:   draft.TotalPrice,
		PaymentTerms: draft.PaymentTerms,
		Notes:        draft.Notes,
		Attachments:  draft.Attachments,
		ReceivedAt:   s.now(),
	}
	if p.LineItems == nil {
		p.LineItems = []ProposalLineItem{}
	}
	if p.Attachments == nil {
		p.Attachments = []Attachment{}
	}
	s.store.InsertProposal(p)

	if rfp.Status == StatusSent {
		rfp.Status = StatusReceived
		s.store.UpdateRfp(rfp)
	}
	return p, nil
}

// IngestEmail routes an inbound vendor email to a new proposal. The sender
// is matched against known vendor addresses and the RFP by its title
// appearing in the subject line; a reply that matches neither is not an
// error worth failing the webhook for, so those outcomes are sentinel
// errors the handler answers 200 to.
func (s *ProposalService) IngestEmail(ctx context.Context, msg InboundEmail) (*Proposal, error) {
	from := strings.ToLower(msg.From)
	var vendor *Vendor
	for _, v := range s.store.ListVendors() {
		if v.Email != "" && strings.Contains(from, strings.ToLower(v.Email)) {
			vendor = v
			break
		}
	}
	if vendor == nil {
		s.log.Info("inbound email from unknown sender", zap.String("from", msg.From))
		return nil, ErrUnknownSender
	}

	subject := strings.ToLower(msg.Subject)
	var rfp *Rfp
	for _, r := range s.store.ListRfps() {
		if r.Title != "" && strings.Contains(subject, strings.ToLower(r.Title)) {
			rfp = r
			break
		}
	}
	if rfp == nil {
		s.log.Info("inbound email matched no RFP", zap.String("subject", msg.Subject))
		return nil, ErrNoMatchingRfp
	}

	reply, err := s.intake.ParseVendorReply(ctx, msg.Text, msg.From)
	if err != nil {
		return nil, err
	}

	vendorName := reply.VendorName
	if vendorName == "" || vendorName == "Unknown Vendor" {
		vendorName = vendor.Name
	}
	p, err := s.Create(ProposalDraft{
		RfpID:        rfp.ID,
		VendorID:     vendor.ID,
		VendorName:   vendorName,
		LineItems:    reply.LineItems,
		TotalPrice:   reply.TotalPrice,
		PaymentTerms: reply.PaymentTerms,
		Notes:        reply.Notes,
		Attachments:  []Attachment{},
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created proposal from inbound email",
		zap.String("proposal_id", p.ID),
		zap.String("vendor", vendor.Name),
		zap.String("rfp_id", rfp.ID))
	return p, nil
}
