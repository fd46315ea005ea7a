package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/procureflow/procureflow/internal/services"
)

const schema = `
CREATE TABLE IF NOT EXISTS rfps (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	items TEXT NOT NULL DEFAULT '[]',
	total_budget REAL,
	currency TEXT NOT NULL DEFAULT 'USD',
	delivery_days INTEGER,
	payment_terms TEXT,
	warranty TEXT,
	notes TEXT,
	mandatory_criteria TEXT NOT NULL DEFAULT '[]',
	optional_criteria TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL DEFAULT 'draft',
	sent_vendor_ids TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vendors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	contact_person TEXT,
	rating INTEGER NOT NULL DEFAULT 3,
	capabilities TEXT NOT NULL DEFAULT '[]',
	tags TEXT NOT NULL DEFAULT '[]',
	last_contacted_at TEXT
);

CREATE TABLE IF NOT EXISTS proposals (
	id TEXT PRIMARY KEY,
	rfp_id TEXT NOT NULL,
	vendor_id TEXT NOT NULL,
	vendor_name TEXT NOT NULL,
	line_items TEXT NOT NULL DEFAULT '[]',
	total_price REAL NOT NULL DEFAULT 0,
	payment_terms TEXT,
	notes TEXT,
	attachments TEXT NOT NULL DEFAULT '[]',
	received_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_proposals_rfp ON proposals(rfp_id);
`

// SQLiteStore persists entities in a single sqlite database. Nested
// sequences (items, criteria, line items, attachments) are stored as JSON
// text columns. Errors are logged and surface as missing rows, matching the
// Store contract.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteStore(db *sql.DB, log *zap.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if log == nil {
		log = zap.NewNop()
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		s.log.Error("sqlite store", zap.String("op", prefix), zap.Error(err))
	}
}

const rfpColumns = "id, title, items, total_budget, currency, delivery_days, payment_terms, warranty, notes, mandatory_criteria, optional_criteria, status, sent_vendor_ids, created_at"

func (s *SQLiteStore) ListRfps() []*services.Rfp {
	rows, err := s.db.Query("SELECT " + rfpColumns + " FROM rfps ORDER BY created_at DESC")
	if err != nil {
		s.logErr("list rfps", err)
		return nil
	}
	defer rows.Close()
	var out []*services.Rfp
	for rows.Next() {
		if r := scanRfp(rows.Scan, s); r != nil {
			out = append(out, r)
		}
	}
	s.logErr("list rfps", rows.Err())
	return out
}

func (s *SQLiteStore) GetRfp(id string) *services.Rfp {
	row := s.db.QueryRow("SELECT "+rfpColumns+" FROM rfps WHERE id = ?", id)
	return scanRfp(row.Scan, s)
}

func scanRfp(scan func(...any) error, s *SQLiteStore) *services.Rfp {
	var (
		r           services.Rfp
		items       string
		budget      sql.NullFloat64
		days        sql.NullInt64
		payment     sql.NullString
		warranty    sql.NullString
		notes       sql.NullString
		mandatory   string
		optional    string
		status      string
		sentVendors string
		createdAt   string
	)
	err := scan(&r.ID, &r.Title, &items, &budget, &r.Currency, &days, &payment,
		&warranty, &notes, &mandatory, &optional, &status, &sentVendors, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("scan rfp", err)
		return nil
	}
	r.Items = decodeJSONSlice[services.RfpItem](items, s)
	if budget.Valid {
		b := budget.Float64
		r.TotalBudget = &b
	}
	if days.Valid {
		d := int(days.Int64)
		r.DeliveryDays = &d
	}
	r.PaymentTerms = payment.String
	r.Warranty = warranty.String
	r.Notes = notes.String
	r.MandatoryCriteria = decodeJSONSlice[string](mandatory, s)
	r.OptionalCriteria = decodeJSONSlice[string](optional, s)
	r.Status = services.RfpStatus(status)
	r.SentVendorIDs = decodeJSONSlice[string](sentVendors, s)
	r.CreatedAt = parseTime(createdAt, s)
	return &r
}

func (s *SQLiteStore) InsertRfp(r *services.Rfp) {
	_, err := s.db.Exec(
		"INSERT INTO rfps ("+rfpColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.Title, encodeJSON(r.Items, s), nullFloat(r.TotalBudget), r.Currency,
		nullInt(r.DeliveryDays), toNullString(r.PaymentTerms), toNullString(r.Warranty),
		toNullString(r.Notes), encodeJSON(r.MandatoryCriteria, s), encodeJSON(r.OptionalCriteria, s),
		string(r.Status), encodeJSON(r.SentVendorIDs, s), formatTime(r.CreatedAt))
	s.logErr("insert rfp", err)
}

func (s *SQLiteStore) UpdateRfp(r *services.Rfp) bool {
	res, err := s.db.Exec(
		`UPDATE rfps SET title=?, items=?, total_budget=?, currency=?, delivery_days=?,
			payment_terms=?, warranty=?, notes=?, mandatory_criteria=?, optional_criteria=?,
			status=?, sent_vendor_ids=? WHERE id=?`,
		r.Title, encodeJSON(r.Items, s), nullFloat(r.TotalBudget), r.Currency,
		nullInt(r.DeliveryDays), toNullString(r.PaymentTerms), toNullString(r.Warranty),
		toNullString(r.Notes), encodeJSON(r.MandatoryCriteria, s), encodeJSON(r.OptionalCriteria, s),
		string(r.Status), encodeJSON(r.SentVendorIDs, s), r.ID)
	if err != nil {
		s.logErr("update rfp", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteRfp(id string) bool {
	res, err := s.db.Exec("DELETE FROM rfps WHERE id = ?", id)
	if err != nil {
		s.logErr("delete rfp", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

const vendorColumns = "id, name, email, contact_person, rating, capabilities, tags, last_contacted_at"

func (s *SQLiteStore) ListVendors() []*services.Vendor {
	rows, err := s.db.Query("SELECT " + vendorColumns + " FROM vendors ORDER BY name")
	if err != nil {
		s.logErr("list vendors", err)
		return nil
	}
	defer rows.Close()
	var out []*services.Vendor
	for rows.Next() {
		if v := scanVendor(rows.Scan, s); v != nil {
			out = append(out, v)
		}
	}
	s.logErr("list vendors", rows.Err())
	return out
}

func (s *SQLiteStore) GetVendor(id string) *services.Vendor {
	row := s.db.QueryRow("SELECT "+vendorColumns+" FROM vendors WHERE id = ?", id)
	return scanVendor(row.Scan, s)
}

func scanVendor(scan func(...any) error, s *SQLiteStore) *services.Vendor {
	var (
		v             services.Vendor
		contact       sql.NullString
		capabilities  string
		tags          string
		lastContacted sql.NullString
	)
	err := scan(&v.ID, &v.Name, &v.Email, &contact, &v.Rating, &capabilities, &tags, &lastContacted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("scan vendor", err)
		return nil
	}
	v.ContactPerson = contact.String
	v.Capabilities = decodeJSONSlice[string](capabilities, s)
	v.Tags = decodeJSONSlice[string](tags, s)
	if lastContacted.Valid && lastContacted.String != "" {
		t := parseTime(lastContacted.String, s)
		v.LastContactedAt = &t
	}
	return &v
}

func (s *SQLiteStore) InsertVendor(v *services.Vendor) {
	_, err := s.db.Exec(
		"INSERT INTO vendors ("+vendorColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		v.ID, v.Name, v.Email, toNullString(v.ContactPerson), v.Rating,
		encodeJSON(v.Capabilities, s), encodeJSON(v.Tags, s), nullTime(v.LastContactedAt))
	s.logErr("insert vendor", err)
}

func (s *SQLiteStore) UpdateVendor(v *services.Vendor) bool {
	res, err := s.db.Exec(
		"UPDATE vendors SET name=?, email=?, contact_person=?, rating=?, capabilities=?, tags=?, last_contacted_at=? WHERE id=?",
		v.Name, v.Email, toNullString(v.ContactPerson), v.Rating,
		encodeJSON(v.Capabilities, s), encodeJSON(v.Tags, s), nullTime(v.LastContactedAt), v.ID)
	if err != nil {
		s.logErr("update vendor", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteVendor(id string) bool {
	res, err := s.db.Exec("DELETE FROM vendors WHERE id = ?", id)
	if err != nil {
		s.logErr("delete vendor", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

const proposalColumns = "id, rfp_id, vendor_id, vendor_name, line_items, total_price, payment_terms, notes, attachments, received_at"

func (s *SQLiteStore) ListProposals() []*services.Proposal {
	return s.queryProposals("SELECT " + proposalColumns + " FROM proposals ORDER BY received_at, id")
}

func (s *SQLiteStore) ListProposalsByRfp(rfpID string) []*services.Proposal {
	return s.queryProposals("SELECT "+proposalColumns+" FROM proposals WHERE rfp_id = ? ORDER BY received_at, id", rfpID)
}

func (s *SQLiteStore) queryProposals(query string, args ...any) []*services.Proposal {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logErr("list proposals", err)
		return nil
	}
	defer rows.Close()
	var out []*services.Proposal
	for rows.Next() {
		if p := scanProposal(rows.Scan, s); p != nil {
			out = append(out, p)
		}
	}
	s.logErr("list proposals", rows.Err())
	return out
}

func (s *SQLiteStore) GetProposal(id string) *services.Proposal {
	row := s.db.QueryRow("SELECT "+proposalColumns+" FROM proposals WHERE id = ?", id)
	return scanProposal(row.Scan, s)
}

func scanProposal(scan func(...any) error, s *SQLiteStore) *services.Proposal {
	var (
		p           services.Proposal
		lineItems   string
		payment     sql.NullString
		notes       sql.NullString
		attachments string
		receivedAt  string
	)
	err := scan(&p.ID, &p.RfpID, &p.VendorID, &p.VendorName, &lineItems,
		&p.TotalPrice, &payment, &notes, &attachments, &receivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("scan proposal", err)
		return nil
	}
	p.LineItems = decodeJSONSlice[services.ProposalLineItem](lineItems, s)
	p.PaymentTerms = payment.String
	p.Notes = notes.String
	p.Attachments = decodeJSONSlice[services.Attachment](attachments, s)
	p.ReceivedAt = parseTime(receivedAt, s)
	return &p
}

func (s *SQLiteStore) InsertProposal(p *services.Proposal) {
	_, err := s.db.Exec(
		"INSERT INTO proposals ("+proposalColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.RfpID, p.VendorID, p.VendorName, encodeJSON(p.LineItems, s),
		p.TotalPrice, toNullString(p.PaymentTerms), toNullString(p.Notes),
		encodeJSON(p.Attachments, s), formatTime(p.ReceivedAt))
	s.logErr("insert proposal", err)
}

func toNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func encodeJSON(v any, s *SQLiteStore) string {
	b, err := json.Marshal(v)
	if err != nil {
		s.logErr("encode json", err)
		return "[]"
	}
	return string(b)
}

func decodeJSONSlice[T any](raw string, s *SQLiteStore) []T {
	out := []T{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logErr("decode json", err)
	}
	return out
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(raw string, s *SQLiteStore) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		s.logErr("parse time", err)
	}
	return t
}
