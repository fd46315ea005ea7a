package store

import (
	"time"

	"github.com/procureflow/procureflow/internal/services"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// Seed loads a small demo dataset: three vendors plus one RFP that already
// has two competing proposals, so the comparison flow works out of the box.
// It is idempotent enough for dev use: existing rows with the same ids are
// simply overwritten by sqlite's INSERT failing and the memory store's map
// write replacing them.
func Seed(s Store, now time.Time) {
	vendors := []*services.Vendor{
		{
			ID:            "vendor-1",
			Name:          "TechSupply Co.",
			Email:         "sales@techsupply.com",
			ContactPerson: "John Smith",
			Rating:        5,
			Capabilities:  []string{"IT Hardware", "Laptops", "Servers", "Networking"},
			Tags:          []string{"Preferred", "Enterprise"},
		},
		{
			ID:            "vendor-2",
			Name:          "Office Solutions Inc.",
			Email:         "rfp@officesolutions.com",
			ContactPerson: "Sarah Johnson",
			Rating:        4,
			Capabilities:  []string{"Office Equipment", "Furniture", "Supplies"},
			Tags:          []string{"Local", "Small Business"},
		},
		{
			ID:            "vendor-3",
			Name:          "Global Tech Partners",
			Email:         "procurement@globaltech.com",
			ContactPerson: "Michael Chen",
			Rating:        4,
			Capabilities:  []string{"IT Hardware", "Software", "Cloud Services", "Support"},
			Tags:          []string{"International", "24/7 Support"},
		},
	}
	for _, v := range vendors {
		s.InsertVendor(v)
	}

	rfp := &services.Rfp{
		ID:    "rfp-sample-1",
		Title: "Office Laptop Procurement Q1 2025",
		Items: []services.RfpItem{
			{Name: "Business Laptop", Qty: 50, Specs: "Intel i7, 16GB RAM, 512GB SSD"},
			{Name: "Laptop Bag", Qty: 50, Specs: "Professional carry bag with padding"},
			{Name: "Wireless Mouse", Qty: 50, Specs: "Ergonomic, Bluetooth/USB receiver"},
		},
		TotalBudget:       floatPtr(75000),
		Currency:          "USD",
		DeliveryDays:      intPtr(30),
		PaymentTerms:      "Net 30",
		Warranty:          "3 years",
		Notes:             "Prefer energy-efficient models with Windows 11 Pro pre-installed.",
		MandatoryCriteria: []string{"3-year warranty", "Windows 11 Pro", "On-site support"},
		OptionalCriteria:  []string{"Extended battery", "Fingerprint reader"},
		Status:            services.StatusReceived,
		SentVendorIDs:     []string{"vendor-1", "vendor-3"},
		CreatedAt:         now.Add(-7 * 24 * time.Hour),
	}
	s.InsertRfp(rfp)

	proposals := []*services.Proposal{
		{
			ID:         "proposal-1",
			RfpID:      rfp.ID,
			VendorID:   "vendor-1",
			VendorName: "TechSupply Co.",
			LineItems: []services.ProposalLineItem{
				{ItemName: "Business Laptop", Qty: 50, UnitPrice: 1200, TotalPrice: 60000, Warranty: "3 years", DeliveryDays: intPtr(21)},
				{ItemName: "Laptop Bag", Qty: 50, UnitPrice: 45, TotalPrice: 2250, Warranty: "1 year", DeliveryDays: intPtr(21)},
				{ItemName: "Wireless Mouse", Qty: 50, UnitPrice: 35, TotalPrice: 1750, Warranty: "2 years", DeliveryDays: intPtr(21)},
			},
			TotalPrice:   64000,
			PaymentTerms: "Net 30",
			Notes:        "Includes free setup and deployment assistance. Extended warranty options available.",
			Attachments:  []services.Attachment{},
			ReceivedAt:   now.Add(-3 * 24 * time.Hour),
		},
		{
			ID:         "proposal-2",
			RfpID:      rfp.ID,
			VendorID:   "vendor-3",
			VendorName: "Global Tech Partners",
			LineItems: []services.ProposalLineItem{
				{ItemName: "Business Laptop", Qty: 50, UnitPrice: 1150, TotalPrice: 57500, Warranty: "3 years", DeliveryDays: intPtr(28)},
				{ItemName: "Laptop Bag", Qty: 50, UnitPrice: 40, TotalPrice: 2000, Warranty: "1 year", DeliveryDays: intPtr(28)},
				{ItemName: "Wireless Mouse", Qty: 50, UnitPrice: 30, TotalPrice: 1500, Warranty: "2 years", DeliveryDays: intPtr(28)},
			},
			TotalPrice:   61000,
			PaymentTerms: "Net 45",
			Notes:        "Bulk discount applied. 24/7 support included for first year.",
			Attachments:  []services.Attachment{},
			ReceivedAt:   now.Add(-2 * 24 * time.Hour),
		},
	}
	for _, p := range proposals {
		s.InsertProposal(p)
	}
}
