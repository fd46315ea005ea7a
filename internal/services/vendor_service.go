package services

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// VendorStore is the persistence surface for vendor CRUD.
type VendorStore interface {
	ListVendors() []*Vendor
	GetVendor(id string) *Vendor
	InsertVendor(v *Vendor)
	UpdateVendor(v *Vendor) bool
	DeleteVendor(id string) bool
}

// VendorService owns vendor CRUD. Ratings are owner-supplied, never
// computed.
type VendorService struct {
	store VendorStore
	newID func() string
}

func NewVendorService(store VendorStore) *VendorService {
	return &VendorService{store: store, newID: uuid.NewString}
}

func (s *VendorService) List() []*Vendor { return s.store.ListVendors() }

func (s *VendorService) Get(id string) (*Vendor, error) {
	v := s.store.GetVendor(id)
	if v == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	return v, nil
}

func (s *VendorService) Create(draft VendorDraft) (*Vendor, error) {
	if err := validateVendorDraft(&draft); err != nil {
		return nil, err
	}
	v := &Vendor{
		ID:            s.newID(),
		Name:          draft.Name,
		Email:         draft.Email,
		ContactPerson: draft.ContactPerson,
		Rating:        draft.Rating,
		Capabilities:  emptyIfNil(draft.Capabilities),
		Tags:          emptyIfNil(draft.Tags),
	}
	s.store.InsertVendor(v)
	return v, nil
}

// Update replaces the caller-editable fields; lastContactedAt is owned by
// the send workflow and left untouched here.
func (s *VendorService) Update(id string, draft VendorDraft) (*Vendor, error) {
	v := s.store.GetVendor(id)
	if v == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	if err := validateVendorDraft(&draft); err != nil {
		return nil, err
	}
	v.Name = draft.Name
	v.Email = draft.Email
	v.ContactPerson = draft.ContactPerson
	v.Rating = draft.Rating
	v.Capabilities = emptyIfNil(draft.Capabilities)
	v.Tags = emptyIfNil(draft.Tags)
	if !s.store.UpdateVendor(v) {
		return nil, NewNotFoundError("vendor not found")
	}
	return v, nil
}

func (s *VendorService) Delete(id string) error {
	if !s.store.DeleteVendor(id) {
		return NewNotFoundError("vendor not found")
	}
	return nil
}

func validateVendorDraft(d *VendorDraft) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	if d.Name == "" {
		return NewInvalidError("name is required")
	}
	if d.Email == "" {
		return NewInvalidError("email is required")
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return NewInvalidError("invalid email address")
	}
	if d.Rating < 1 || d.Rating > 5 {
		return NewInvalidError("rating must be between 1 and 5")
	}
	return nil
}
