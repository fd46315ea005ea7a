package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const extractRfpPrompt = `You are an assistant that extracts procurement requirements into strict JSON. Input: a natural language paragraph describing what to buy. Output: a single JSON object with keys:
title, items (array of {name, qty, specs}), totalBudget (number in USD or null), currency (string, default "USD"), deliveryDays (integer or null), paymentTerms (string or null), warranty (string or null), notes (string or null), mandatoryCriteria (array of strings), optionalCriteria (array of strings).

If any numeric field is not stated, set it to null. DO NOT include extra text. Return valid JSON only.

Rules:
- Extract specific product names and quantities
- Parse budget amounts and convert to numbers
- Identify delivery timeline requirements
- Extract payment and warranty terms
- List any mandatory requirements as mandatoryCriteria
- List nice-to-have features as optionalCriteria
- Generate a concise title summarizing the procurement`

const parseReplyPrompt = `You receive an email body (may include free text and pasted tables). Extract a proposal JSON:
{ vendorName, lineItems: [{ itemName, qty, unitPrice, totalPrice, warranty, deliveryDays }], totalPrice, paymentTerms, notes }.

Rules:
- Identify the vendor name from email signature or content
- Extract all line items with quantities and prices
- Parse currencies and convert to numbers
- Calculate totals if not explicitly stated
- Extract warranty and delivery information per item if available
- Capture payment terms
- Include any additional notes or terms

Return JSON only, no additional text.`

// ParsedReply is the structured form of a vendor's email reply.
type ParsedReply struct {
	VendorName   string
	LineItems    []ProposalLineItem
	TotalPrice   float64
	PaymentTerms string
	Notes        string
}

// IntakeService turns free text into structured records through the
// external extraction capability. Model output is treated as best-effort:
// fields are coerced defensively and missing values fall back to defaults.
type IntakeService struct {
	ai Completer
}

func NewIntakeService(ai Completer) *IntakeService {
	return &IntakeService{ai: ai}
}

// ExtractRfp converts a prose description of purchasing needs into an RFP
// draft.
func (s *IntakeService) ExtractRfp(ctx context.Context, text string) (*RfpDraft, error) {
	if len(strings.TrimSpace(text)) < 10 {
		return nil, NewInvalidError("please provide more details about your requirements")
	}
	if s.ai == nil {
		return nil, NewBadGatewayError("extraction capability is not configured")
	}
	raw, err := s.ai.CompleteJSON(ctx, extractRfpPrompt, text)
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, NewBadGatewayError("extraction returned invalid JSON")
	}

	draft := &RfpDraft{
		Title:             coerceString(parsed["title"]),
		Items:             []RfpItem{},
		Currency:          coerceString(parsed["currency"]),
		PaymentTerms:      coerceString(parsed["paymentTerms"]),
		Warranty:          coerceString(parsed["warranty"]),
		Notes:             coerceString(parsed["notes"]),
		MandatoryCriteria: coerceStringSlice(parsed["mandatoryCriteria"]),
		OptionalCriteria:  coerceStringSlice(parsed["optionalCriteria"]),
	}
	if draft.Title == "" {
		draft.Title = "Untitled RFP"
	}
	if draft.Currency == "" {
		draft.Currency = "USD"
	}
	if budget, ok := coerceFloat(parsed["totalBudget"]); ok {
		draft.TotalBudget = &budget
	}
	if days, ok := coerceInt(parsed["deliveryDays"]); ok {
		draft.DeliveryDays = &days
	}
	if items, ok := parsed["items"].([]any); ok {
		for _, raw := range items {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			qty, _ := coerceInt(m["qty"])
			draft.Items = append(draft.Items, RfpItem{
				Name:  coerceString(m["name"]),
				Qty:   qty,
				Specs: coerceString(m["specs"]),
			})
		}
	}
	return draft, nil
}

// ParseVendorReply converts a vendor's email body into a structured reply.
func (s *IntakeService) ParseVendorReply(ctx context.Context, emailText, vendorEmail string) (*ParsedReply, error) {
	if s.ai == nil {
		return nil, NewBadGatewayError("reply parsing capability is not configured")
	}
	user := fmt.Sprintf("Email from: %s\n\n%s", vendorEmail, emailText)
	raw, err := s.ai.CompleteJSON(ctx, parseReplyPrompt, user)
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, NewBadGatewayError("reply parsing returned invalid JSON")
	}

	reply := &ParsedReply{
		VendorName:   coerceString(parsed["vendorName"]),
		LineItems:    []ProposalLineItem{},
		PaymentTerms: coerceString(parsed["paymentTerms"]),
		Notes:        coerceString(parsed["notes"]),
	}
	if reply.VendorName == "" {
		reply.VendorName = "Unknown Vendor"
	}
	reply.TotalPrice, _ = coerceFloat(parsed["totalPrice"])
	if items, ok := parsed["lineItems"].([]any); ok {
		for _, raw := range items {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			qty, _ := coerceInt(m["qty"])
			unitPrice, _ := coerceFloat(m["unitPrice"])
			totalPrice, _ := coerceFloat(m["totalPrice"])
			li := ProposalLineItem{
				ItemName:   coerceString(m["itemName"]),
				Qty:        qty,
				UnitPrice:  unitPrice,
				TotalPrice: totalPrice,
				Warranty:   coerceString(m["warranty"]),
			}
			if days, ok := coerceInt(m["deliveryDays"]); ok && days != 0 {
				li.DeliveryDays = &days
			}
			reply.LineItems = append(reply.LineItems, li)
		}
	}
	return reply, nil
}

// Coercion helpers: the model is asked for strict JSON but in practice may
// return numbers as strings or null where a value was expected.

func coerceString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func coerceInt(v any) (int, bool) {
	if f, ok := coerceFloat(v); ok {
		return int(f), true
	}
	return 0, false
}

func coerceStringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		if s := coerceString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
