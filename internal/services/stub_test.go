package services

import (
	"context"
	"errors"
	"sort"
)

// stubStore is an in-memory test double for every store interface the
// services consume. Tests mutate its maps directly.
type stubStore struct {
	rfps      map[string]*Rfp
	vendors   map[string]*Vendor
	proposals map[string]*Proposal
}

func newStubStore() *stubStore {
	return &stubStore{
		rfps:      map[string]*Rfp{},
		vendors:   map[string]*Vendor{},
		proposals: map[string]*Proposal{},
	}
}

func (s *stubStore) ListRfps() []*Rfp {
	out := make([]*Rfp, 0, len(s.rfps))
	for _, r := range s.rfps {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
// GetRfp hands out a copy like the real stores do, so service code that
// mutates the result cannot reach into the stub's state.
func (s *stubStore) GetRfp(id string) *Rfp {
	r, ok := s.rfps[id]
	if !ok {
		return nil
	}
	cp := *r
	cp.Items = append([]RfpItem(nil), r.Items...)
	cp.MandatoryCriteria = append([]string(nil), r.MandatoryCriteria...)
	cp.OptionalCriteria = append([]string(nil), r.OptionalCriteria...)
	cp.SentVendorIDs = append([]string(nil), r.SentVendorIDs...)
	return &cp
}
func (s *stubStore) InsertRfp(r *Rfp) { s.rfps[r.ID] = r }
func (s *stubStore) UpdateRfp(r *Rfp) bool {
	if _, ok := s.rfps[r.ID]; !ok {
		return false
	}
	s.rfps[r.ID] = r
	return true
}
func (s *stubStore) DeleteRfp(id string) bool {
	if _, ok := s.rfps[id]; !ok {
		return false
	}
	delete(s.rfps, id)
	return true
}

func (s *stubStore) ListVendors() []*Vendor {
	out := make([]*Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
func (s *stubStore) GetVendor(id string) *Vendor {
	v, ok := s.vendors[id]
	if !ok {
		return nil
	}
	cp := *v
	return &cp
}
func (s *stubStore) InsertVendor(v *Vendor) { s.vendors[v.ID] = v }
func (s *stubStore) UpdateVendor(v *Vendor) bool {
	if _, ok := s.vendors[v.ID]; !ok {
		return false
	}
	s.vendors[v.ID] = v
	return true
}
func (s *stubStore) DeleteVendor(id string) bool {
	if _, ok := s.vendors[id]; !ok {
		return false
	}
	delete(s.vendors, id)
	return true
}

func (s *stubStore) ListProposals() []*Proposal {
	out := make([]*Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out
}
func (s *stubStore) ListProposalsByRfp(rfpID string) []*Proposal {
	out := []*Proposal{}
	for _, p := range s.ListProposals() {
		if p.RfpID == rfpID {
			out = append(out, p)
		}
	}
	return out
}
func (s *stubStore) GetProposal(id string) *Proposal { return s.proposals[id] }
func (s *stubStore) InsertProposal(p *Proposal)      { s.proposals[p.ID] = p }

// fakeCompleter scripts the external model: one canned response or error.
type fakeCompleter struct {
	resp       string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (f *fakeCompleter) CompleteJSON(ctx context.Context, system, user string) ([]byte, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.resp), nil
}

// fakeMailer records deliveries and can fail for selected addresses.
type fakeMailer struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeMailer) SendRfp(ctx context.Context, vendor *Vendor, rfp *Rfp) error {
	if f.failFor[vendor.Email] {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, vendor.Email)
	return nil
}
