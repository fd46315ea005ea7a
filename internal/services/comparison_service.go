package services

import (
	"context"

	"go.uber.org/zap"
)

// ComparisonStore is the persistence surface the orchestrator needs.
type ComparisonStore interface {
	GetRfp(id string) *Rfp
	UpdateRfp(r *Rfp) bool
	ListProposalsByRfp(rfpID string) []*Proposal
	GetVendor(id string) *Vendor
}

// ComparisonService composes the scoring engine and the narrative advisor
// into a single ComparisonResult. It is the only comparison entry point
// exposed to the API layer.
type ComparisonService struct {
	store   ComparisonStore
	scoring *ScoringService
	advisor *NarrativeAdvisor
	log     *zap.Logger
}

func NewComparisonService(store ComparisonStore, advisor *NarrativeAdvisor, log *zap.Logger) *ComparisonService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ComparisonService{
		store:   store,
		scoring: NewScoringService(store, log),
		advisor: advisor,
		log:     log,
	}
}

// Compare scores and narrates the proposals of one RFP.
//
// Failure modes: not_found when the RFP does not exist, insufficient_data
// when fewer than two proposals exist (comparison is meaningless with 0 or
// 1 candidate). Scoring always runs synchronously; the narrative step is
// best-effort and its failures are absorbed into the deterministic fallback,
// never surfaced. As a side effect the RFP advances to "compared" whether or
// not the narrative step succeeded. Recomputation is idempotent, so
// concurrent comparisons of the same RFP are last-write-wins on status.
func (s *ComparisonService) Compare(ctx context.Context, rfpID string) (*ComparisonResult, error) {
	rfp := s.store.GetRfp(rfpID)
	if rfp == nil {
		return nil, NewNotFoundError("RFP not found")
	}
	proposals := s.store.ListProposalsByRfp(rfpID)
	if len(proposals) < 2 {
		return nil, NewInsufficientDataError("need at least 2 proposals to compare")
	}

	scores := s.scoring.Score(rfp, proposals)
	narrative := s.advisor.Narrate(ctx, rfp, proposals, scores)

	if statusRank[StatusCompared] > statusRank[rfp.Status] {
		rfp.Status = StatusCompared
		if !s.store.UpdateRfp(rfp) {
			s.log.Warn("failed to advance RFP status", zap.String("rfp_id", rfpID))
		}
	}

	return &ComparisonResult{
		Scores:              scores,
		Summary:             narrative.Summary,
		RecommendedVendorID: narrative.RecommendedVendorID,
		Reason:              narrative.Reason,
	}, nil
}
