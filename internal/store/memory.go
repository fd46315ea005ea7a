package store

import (
	"sort"
	"sync"

	"github.com/procureflow/procureflow/internal/services"
)

// MemoryStore keeps everything in RWMutex-guarded maps. It backs tests and
// dev runs without a database file.
type MemoryStore struct {
	mu        sync.RWMutex
	rfps      map[string]*services.Rfp
	vendors   map[string]*services.Vendor
	proposals map[string]*services.Proposal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rfps:      map[string]*services.Rfp{},
		vendors:   map[string]*services.Vendor{},
		proposals: map[string]*services.Proposal{},
	}
}

func (s *MemoryStore) ListRfps() []*services.Rfp {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Rfp, 0, len(s.rfps))
	for _, r := range s.rfps {
		out = append(out, cloneRfp(r))
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemoryStore) GetRfp(id string) *services.Rfp {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRfp(s.rfps[id])
}

func (s *MemoryStore) InsertRfp(r *services.Rfp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rfps[r.ID] = cloneRfp(r)
}

func (s *MemoryStore) UpdateRfp(r *services.Rfp) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rfps[r.ID]; !ok {
		return false
	}
	s.rfps[r.ID] = cloneRfp(r)
	return true
}

func (s *MemoryStore) DeleteRfp(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rfps[id]; !ok {
		return false
	}
	delete(s.rfps, id)
	return true
}

func (s *MemoryStore) ListVendors() []*services.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, cloneVendor(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *MemoryStore) GetVendor(id string) *services.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneVendor(s.vendors[id])
}

func (s *MemoryStore) InsertVendor(v *services.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors[v.ID] = cloneVendor(v)
}

func (s *MemoryStore) UpdateVendor(v *services.Vendor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[v.ID]; !ok {
		return false
	}
	s.vendors[v.ID] = cloneVendor(v)
	return true
}

func (s *MemoryStore) DeleteVendor(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[id]; !ok {
		return false
	}
	delete(s.vendors, id)
	return true
}

func (s *MemoryStore) ListProposals() []*services.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		out = append(out, cloneProposal(p))
	}
	sortProposals(out)
	return out
}

func (s *MemoryStore) ListProposalsByRfp(rfpID string) []*services.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Proposal{}
	for _, p := range s.proposals {
		if p.RfpID == rfpID {
			out = append(out, cloneProposal(p))
		}
	}
	sortProposals(out)
	return out
}

func (s *MemoryStore) GetProposal(id string) *services.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProposal(s.proposals[id])
}

func (s *MemoryStore) InsertProposal(p *services.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[p.ID] = cloneProposal(p)
}

// oldest first, ties broken by id for a stable comparison order
func sortProposals(ps []*services.Proposal) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].ReceivedAt.Equal(ps[j].ReceivedAt) {
			return ps[i].ID < ps[j].ID
		}
		return ps[i].ReceivedAt.Before(ps[j].ReceivedAt)
	})
}

func cloneRfp(r *services.Rfp) *services.Rfp {
	if r == nil {
		return nil
	}
	out := *r
	out.Items = append([]services.RfpItem(nil), r.Items...)
	out.MandatoryCriteria = append([]string(nil), r.MandatoryCriteria...)
	out.OptionalCriteria = append([]string(nil), r.OptionalCriteria...)
	out.SentVendorIDs = append([]string(nil), r.SentVendorIDs...)
	if r.TotalBudget != nil {
		b := *r.TotalBudget
		out.TotalBudget = &b
	}
	if r.DeliveryDays != nil {
		d := *r.DeliveryDays
		out.DeliveryDays = &d
	}
	return &out
}

func cloneVendor(v *services.Vendor) *services.Vendor {
	if v == nil {
		return nil
	}
	out := *v
	out.Capabilities = append([]string(nil), v.Capabilities...)
	out.Tags = append([]string(nil), v.Tags...)
	if v.LastContactedAt != nil {
		t := *v.LastContactedAt
		out.LastContactedAt = &t
	}
	return &out
}

func cloneProposal(p *services.Proposal) *services.Proposal {
	if p == nil {
		return nil
	}
	out := *p
	out.LineItems = make([]services.ProposalLineItem, len(p.LineItems))
	for i, li := range p.LineItems {
		out.LineItems[i] = li
		if li.DeliveryDays != nil {
			d := *li.DeliveryDays
			out.LineItems[i].DeliveryDays = &d
		}
	}
	out.Attachments = append([]services.Attachment(nil), p.Attachments...)
	return &out
}
