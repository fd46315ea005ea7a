package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptopRfp() *Rfp {
	days := 30
	return &Rfp{
		ID:    "rfp-1",
		Title: "Office Laptop Procurement",
		Items: []RfpItem{
			{Name: "Business Laptop", Qty: 50},
			{Name: "Laptop Bag", Qty: 50},
			{Name: "Wireless Mouse", Qty: 50},
		},
		DeliveryDays: &days,
		Status:       StatusReceived,
	}
}

func fullProposal(id, vendorID, vendorName string, total float64, deliveryDays int) *Proposal {
	d := deliveryDays
	li := func(name string, price float64) ProposalLineItem {
		return ProposalLineItem{ItemName: name, Qty: 50, TotalPrice: price, Warranty: "3 years", DeliveryDays: &d}
	}
	return &Proposal{
		ID:         id,
		RfpID:      "rfp-1",
		VendorID:   vendorID,
		VendorName: vendorName,
		LineItems: []ProposalLineItem{
			li("Business Laptop", total-4000),
			li("Laptop Bag", 2250),
			li("Wireless Mouse", 1750),
		},
		TotalPrice: total,
	}
}

func TestScoreTwoProposals(t *testing.T) {
	store := newStubStore()
	store.InsertVendor(&Vendor{ID: "vendor-1", Name: "TechSupply Co.", Rating: 5})
	store.InsertVendor(&Vendor{ID: "vendor-3", Name: "Global Tech Partners", Rating: 4})
	svc := NewScoringService(store, nil)

	a := fullProposal("proposal-1", "vendor-1", "TechSupply Co.", 64000, 21)
	b := fullProposal("proposal-2", "vendor-3", "Global Tech Partners", 61000, 28)

	scores := svc.Score(laptopRfp(), []*Proposal{a, b})
	require.Len(t, scores, 2)

	// most expensive scores 0, cheapest 100
	assert.Equal(t, 0.0, scores[0].PriceScore)
	assert.Equal(t, 100.0, scores[1].PriceScore)

	// beating the 30 day target pushes delivery above 100
	assert.Equal(t, 130.0, scores[0].DeliveryScore)
	assert.Equal(t, 106.7, scores[1].DeliveryScore)

	assert.Equal(t, 100.0, scores[0].WarrantyScore)
	assert.Equal(t, 100.0, scores[0].CompletenessScore)
	assert.Equal(t, 100.0, scores[0].VendorRatingScore)
	assert.Equal(t, 80.0, scores[1].VendorRatingScore)

	assert.Equal(t, 66.0, scores[0].TotalScore)
	assert.Equal(t, 99.3, scores[1].TotalScore)

	// order matches input order
	assert.Equal(t, "proposal-1", scores[0].ProposalID)
	assert.Equal(t, "proposal-2", scores[1].ProposalID)
}

func TestScoreTotalIsWeightedSum(t *testing.T) {
	store := newStubStore()
	store.InsertVendor(&Vendor{ID: "vendor-1", Rating: 5})
	store.InsertVendor(&Vendor{ID: "vendor-3", Rating: 4})
	svc := NewScoringService(store, nil)

	scores := svc.Score(laptopRfp(), []*Proposal{
		fullProposal("proposal-1", "vendor-1", "A", 64000, 21),
		fullProposal("proposal-2", "vendor-3", "B", 61000, 28),
		fullProposal("proposal-3", "vendor-1", "C", 70000, 45),
	})
	for _, sc := range scores {
		recombined := sc.PriceScore*WeightPrice +
			sc.DeliveryScore*WeightDelivery +
			sc.WarrantyScore*WeightWarranty +
			sc.CompletenessScore*WeightCompleteness +
			sc.VendorRatingScore*WeightVendorRating
		assert.InDelta(t, sc.TotalScore, recombined, 0.05, "proposal %s", sc.ProposalID)
	}
}

func TestScoreEqualPricesAllZero(t *testing.T) {
	store := newStubStore()
	svc := NewScoringService(store, nil)

	scores := svc.Score(laptopRfp(), []*Proposal{
		fullProposal("proposal-1", "vendor-1", "A", 50000, 30),
		fullProposal("proposal-2", "vendor-2", "B", 50000, 30),
	})
	require.Len(t, scores, 2)
	// identical totals collapse the price range, so nobody gets price credit
	assert.Equal(t, 0.0, scores[0].PriceScore)
	assert.Equal(t, 0.0, scores[1].PriceScore)
}

func TestScoreSingleProposal(t *testing.T) {
	store := newStubStore()
	svc := NewScoringService(store, nil)

	scores := svc.Score(laptopRfp(), []*Proposal{
		fullProposal("proposal-1", "vendor-1", "A", 50000, 30),
	})
	require.Len(t, scores, 1)
	assert.Equal(t, 0.0, scores[0].PriceScore)
}

func TestScoreLowestPriceNeverBeaten(t *testing.T) {
	store := newStubStore()
	svc := NewScoringService(store, nil)

	scores := svc.Score(laptopRfp(), []*Proposal{
		fullProposal("proposal-1", "vendor-1", "A", 48000, 30),
		fullProposal("proposal-2", "vendor-2", "B", 52000, 30),
		fullProposal("proposal-3", "vendor-3", "C", 61000, 30),
	})
	for _, sc := range scores[1:] {
		assert.LessOrEqual(t, sc.PriceScore, scores[0].PriceScore)
	}
	assert.Equal(t, 100.0, scores[0].PriceScore)
}

func TestScoreNoLineItems(t *testing.T) {
	store := newStubStore()
	store.InsertVendor(&Vendor{ID: "vendor-1", Rating: 5})
	svc := NewScoringService(store, nil)

	empty := &Proposal{ID: "proposal-1", VendorID: "vendor-1", TotalPrice: 40000, LineItems: []ProposalLineItem{}}
	full := fullProposal("proposal-2", "vendor-1", "B", 50000, 30)

	scores := svc.Score(laptopRfp(), []*Proposal{empty, full})
	require.Len(t, scores, 2, "empty proposal must stay in the batch")

	assert.Equal(t, 0.0, scores[0].DeliveryScore)
	assert.Equal(t, 0.0, scores[0].WarrantyScore)
	assert.Equal(t, 0.0, scores[0].CompletenessScore)
	// price and vendor rating are still computed
	assert.Equal(t, 100.0, scores[0].PriceScore)
	assert.Equal(t, 100.0, scores[0].VendorRatingScore)
}

func TestScoreMissingVendorDefaultsRating(t *testing.T) {
	store := newStubStore()
	svc := NewScoringService(store, nil)

	scores := svc.Score(laptopRfp(), []*Proposal{
		fullProposal("proposal-1", "vendor-gone", "A", 50000, 30),
		fullProposal("proposal-2", "vendor-gone-too", "B", 52000, 30),
	})
	assert.Equal(t, 60.0, scores[0].VendorRatingScore)
	assert.Equal(t, 60.0, scores[1].VendorRatingScore)
}

func TestScoreDeterministic(t *testing.T) {
	store := newStubStore()
	store.InsertVendor(&Vendor{ID: "vendor-1", Rating: 5})
	store.InsertVendor(&Vendor{ID: "vendor-3", Rating: 4})
	svc := NewScoringService(store, nil)

	rfp := laptopRfp()
	batch := []*Proposal{
		fullProposal("proposal-1", "vendor-1", "A", 64000, 21),
		fullProposal("proposal-2", "vendor-3", "B", 61000, 28),
	}
	first := svc.Score(rfp, batch)
	second := svc.Score(rfp, batch)
	assert.Equal(t, first, second)
}

func TestRound1(t *testing.T) {
	cases := map[float64]float64{
		106.66666: 106.7,
		99.34:     99.3,
		0.05:      0.1,
		-0.05:     -0.1,
	}
	for in, want := range cases {
		if got := round1(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("round1(%v) = %v, want %v", in, got, want)
		}
	}
}
