package services

import (
	"math"

	"go.uber.org/zap"
)

// Criterion weights. They sum to 1.0; totals stay on a 0-100 scale apart
// from the delivery bonus described below.
const (
	WeightPrice        = 0.40
	WeightDelivery     = 0.20
	WeightWarranty     = 0.15
	WeightCompleteness = 0.15
	WeightVendorRating = 0.10
)

const (
	// defaultDeliveryDays substitutes for line items and RFPs that state no
	// delivery target.
	defaultDeliveryDays = 30
	// defaultVendorRating substitutes when the proposal's vendor record is
	// missing at scoring time.
	defaultVendorRating = 3
)

// VendorLookup provides the read-only vendor access the scoring engine
// needs for the rating criterion.
type VendorLookup interface {
	GetVendor(id string) *Vendor
}

// ScoringService computes batch-relative scores for competing proposals.
// Scoring is deterministic and has no external dependencies; the only side
// effect is read-only vendor lookups.
type ScoringService struct {
	vendors VendorLookup
	log     *zap.Logger
}

func NewScoringService(vendors VendorLookup, log *zap.Logger) *ScoringService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScoringService{vendors: vendors, log: log}
}

// Score computes one ProposalScore per proposal, order-preserving.
//
// priceScore ranks each proposal against the cheapest and most expensive in
// the batch. The formula is asymmetric at the edges: when every proposal has
// the same total price (including a batch of one) the numerator is zero and
// every priceScore is 0, not 100. That behavior is kept for compatibility
// with existing comparisons and is pinned by tests.
//
// deliveryScore rewards beating the target lead time and is uncapped above
// 100 on purpose; it is floored at 0 on the slow side.
//
// A proposal with no line items scores 0 on delivery, warranty and
// completeness rather than being dropped, so the result count always matches
// the input count.
func (s *ScoringService) Score(rfp *Rfp, proposals []*Proposal) []ProposalScore {
	if len(proposals) == 0 {
		return nil
	}

	// Batch-wide price bounds, computed once before the per-proposal loop.
	minPrice, maxPrice := proposals[0].TotalPrice, proposals[0].TotalPrice
	for _, p := range proposals[1:] {
		if p.TotalPrice < minPrice {
			minPrice = p.TotalPrice
		}
		if p.TotalPrice > maxPrice {
			maxPrice = p.TotalPrice
		}
	}
	priceRange := maxPrice - minPrice
	if priceRange < 1 {
		priceRange = 1
	}

	targetDelivery := defaultDeliveryDays
	if rfp.DeliveryDays != nil && *rfp.DeliveryDays > 0 {
		targetDelivery = *rfp.DeliveryDays
	}

	scores := make([]ProposalScore, 0, len(proposals))
	for _, p := range proposals {
		priceScore := (maxPrice - p.TotalPrice) / priceRange * 100

		var deliveryScore, warrantyScore, completenessScore float64
		if len(p.LineItems) == 0 {
			s.log.Warn("proposal has no line items, rate criteria score 0",
				zap.String("proposal_id", p.ID),
				zap.String("rfp_id", rfp.ID))
		} else {
			totalDelivery := 0
			warrantied := 0
			for _, li := range p.LineItems {
				days := defaultDeliveryDays
				if li.DeliveryDays != nil && *li.DeliveryDays > 0 {
					days = *li.DeliveryDays
				}
				totalDelivery += days
				if li.Warranty != "" {
					warrantied++
				}
			}
			avgDelivery := float64(totalDelivery) / float64(len(p.LineItems))
			deliveryScore = 100 - (avgDelivery-float64(targetDelivery))/float64(targetDelivery)*100
			if deliveryScore < 0 {
				deliveryScore = 0
			}
			warrantyScore = float64(warrantied) / float64(len(p.LineItems)) * 100
			if len(rfp.Items) > 0 {
				completenessScore = float64(len(p.LineItems)) / float64(len(rfp.Items)) * 100
				if completenessScore > 100 {
					completenessScore = 100
				}
			}
		}

		rating := defaultVendorRating
		if v := s.vendors.GetVendor(p.VendorID); v != nil && v.Rating > 0 {
			rating = v.Rating
		} else if v == nil {
			s.log.Warn("vendor not found during scoring, using default rating",
				zap.String("vendor_id", p.VendorID),
				zap.String("proposal_id", p.ID))
		}
		vendorRatingScore := float64(rating) / 5 * 100

		totalScore := priceScore*WeightPrice +
			deliveryScore*WeightDelivery +
			warrantyScore*WeightWarranty +
			completenessScore*WeightCompleteness +
			vendorRatingScore*WeightVendorRating

		scores = append(scores, ProposalScore{
			ProposalID:        p.ID,
			VendorName:        p.VendorName,
			PriceScore:        round1(priceScore),
			DeliveryScore:     round1(deliveryScore),
			WarrantyScore:     round1(warrantyScore),
			CompletenessScore: round1(completenessScore),
			VendorRatingScore: round1(vendorRatingScore),
			TotalScore:        round1(totalScore),
		})
	}
	return scores
}

// round1 rounds to one decimal place, half away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
