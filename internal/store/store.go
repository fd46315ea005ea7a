// Package store provides the entity store behind the procurement workflow:
// plain CRUD over RFPs, vendors and proposals with id-keyed lookups. Both
// implementations hand out copies, so callers can mutate results freely and
// nothing leaks shared state between requests.
package store

import "github.com/procureflow/procureflow/internal/services"

// Store is the full persistence surface. Write failures in the sqlite
// implementation are logged, not returned; reads answer nil / empty on
// missing rows (last-write-wins, no transactional guarantees).
type Store interface {
	ListRfps() []*services.Rfp
	GetRfp(id string) *services.Rfp
	InsertRfp(r *services.Rfp)
	UpdateRfp(r *services.Rfp) bool
	DeleteRfp(id string) bool

	ListVendors() []*services.Vendor
	GetVendor(id string) *services.Vendor
	InsertVendor(v *services.Vendor)
	UpdateVendor(v *services.Vendor) bool
	DeleteVendor(id string) bool

	ListProposals() []*services.Proposal
	ListProposalsByRfp(rfpID string) []*services.Proposal
	GetProposal(id string) *services.Proposal
	InsertProposal(p *services.Proposal)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)

	_ services.ComparisonStore = (Store)(nil)
	_ services.RfpStore        = (Store)(nil)
	_ services.VendorStore     = (Store)(nil)
	_ services.ProposalStore   = (Store)(nil)
	_ services.VendorLookup    = (Store)(nil)
)
