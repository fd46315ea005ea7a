package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Completer is the external text-generation capability. Implementations
// return the raw JSON object produced by the model, or an error. Tests
// substitute a scripted fake.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) ([]byte, error)
}

// Narrative is the human-readable portion of a comparison result.
type Narrative struct {
	Summary             string
	RecommendedVendorID string
	Reason              string
}

const comparePrompt = `You are a procurement advisor. Compare the following vendor proposals for an RFP and provide:
1. A summary paragraph comparing the key differences
2. Your recommendation for which vendor to select
3. The reason for your recommendation

Consider: total price, delivery time, warranty coverage, completeness of proposal, and vendor reliability.

Return JSON with keys: summary (string), recommendedVendorId (string), reason (string).`

// NarrativeAdvisor wraps the Completer and degrades to a deterministic
// narrative when it is absent or fails.
type NarrativeAdvisor struct {
	ai  Completer
	log *zap.Logger
}

func NewNarrativeAdvisor(ai Completer, log *zap.Logger) *NarrativeAdvisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &NarrativeAdvisor{ai: ai, log: log}
}

// Narrate produces the summary, recommendation and reason for a scored
// batch. It never fails: one attempt against the external capability, no
// retry, and any failure (transport, malformed response, missing content)
// replaces the whole narrative with the deterministic fallback. On success,
// individual missing fields are filled from the fallback field by field.
func (a *NarrativeAdvisor) Narrate(ctx context.Context, rfp *Rfp, proposals []*Proposal, scores []ProposalScore) Narrative {
	fallback := FallbackNarrative(proposals, scores)
	if a == nil || a.ai == nil {
		return fallback
	}

	type proposalSummary struct {
		VendorName string  `json:"vendorName"`
		VendorID   string  `json:"vendorId"`
		TotalPrice float64 `json:"totalPrice"`
		ItemCount  int     `json:"itemCount"`
		Score      float64 `json:"score"`
	}
	summaries := make([]proposalSummary, 0, len(proposals))
	for i, p := range proposals {
		sum := proposalSummary{
			VendorName: p.VendorName,
			VendorID:   p.VendorID,
			TotalPrice: p.TotalPrice,
			ItemCount:  len(p.LineItems),
		}
		if i < len(scores) {
			sum.Score = scores[i].TotalScore
		}
		summaries = append(summaries, sum)
	}
	encoded, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		a.log.Warn("encode proposal summaries", zap.Error(err))
		return fallback
	}

	budget := "Not specified"
	if rfp.TotalBudget != nil {
		budget = fmt.Sprintf("%g", *rfp.TotalBudget)
	}
	user := fmt.Sprintf("RFP: %s\nBudget: %s\nRequired items: %d\n\nProposals:\n%s",
		rfp.Title, budget, len(rfp.Items), encoded)

	raw, err := a.ai.CompleteJSON(ctx, comparePrompt, user)
	if err != nil {
		a.log.Warn("narrative generation failed, using deterministic fallback",
			zap.String("rfp_id", rfp.ID), zap.Error(err))
		return fallback
	}

	var parsed struct {
		Summary             string `json:"summary"`
		RecommendedVendorID string `json:"recommendedVendorId"`
		Reason              string `json:"reason"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		a.log.Warn("narrative response is not valid JSON, using deterministic fallback",
			zap.String("rfp_id", rfp.ID), zap.Error(err))
		return fallback
	}

	out := Narrative{
		Summary:             parsed.Summary,
		RecommendedVendorID: parsed.RecommendedVendorID,
		Reason:              parsed.Reason,
	}
	if out.Summary == "" {
		out.Summary = fallback.Summary
	}
	if out.RecommendedVendorID == "" {
		out.RecommendedVendorID = fallback.RecommendedVendorID
	}
	if out.Reason == "" {
		out.Reason = fallback.Reason
	}
	return out
}

// FallbackNarrative builds the deterministic narrative from scoring output
// alone. The recommended proposal is the first one, in input order, carrying
// the maximum total score (first-wins on ties).
func FallbackNarrative(proposals []*Proposal, scores []ProposalScore) Narrative {
	if len(scores) == 0 || len(proposals) == 0 {
		return Narrative{}
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].TotalScore > scores[best].TotalScore {
			best = i
		}
	}
	var vendorID string
	for _, p := range proposals {
		if p.ID == scores[best].ProposalID {
			vendorID = p.VendorID
			break
		}
	}
	return Narrative{
		Summary: fmt.Sprintf(
			"Comparing %d proposals. Scores are based on price (40%%), delivery (20%%), warranty (15%%), completeness (15%%), and vendor rating (10%%).",
			len(proposals)),
		RecommendedVendorID: vendorID,
		Reason: fmt.Sprintf(
			"Based on the weighted scoring analysis, %s achieves the highest overall score of %.1f/100.",
			scores[best].VendorName, scores[best].TotalScore),
	}
}
