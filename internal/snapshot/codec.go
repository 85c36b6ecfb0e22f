// Package snapshot serializes the whole ledger to a portable blob and
// restores it: plain JSON, a password-encrypted envelope, and a
// URL-embeddable encoding for link sharing.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andy/ledgercraft/internal/domain"
)

var (
	// ErrMalformedSnapshot means the payload is not a parseable ledger
	ErrMalformedSnapshot = errors.New("malformed ledger snapshot")
	// ErrMalformedEnvelope means the payload is not a valid encrypted envelope
	ErrMalformedEnvelope = errors.New("malformed encrypted envelope")
	// ErrBadPassword means the authentication tag check failed: wrong
	// password or tampered ciphertext. Decryption never returns garbage.
	ErrBadPassword = errors.New("wrong password or tampered data")
)

// Encode serializes the ledger as a canonical JSON document. Array order
// is preserved; key order is irrelevant.
func Encode(l *domain.Ledger) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// EncodePretty serializes the ledger with indentation, for export files
func EncodePretty(l *domain.Ledger) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// Decode restores a ledger from a plain JSON document. Missing settings
// fall back to defaults; nil collections become empty ones so the rest of
// the system never sees a nil slice.
func Decode(data []byte) (*domain.Ledger, error) {
	var l domain.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if l.Settings == (domain.Settings{}) {
		l.Settings = domain.DefaultSettings()
	}
	if l.Clients == nil {
		l.Clients = make([]*domain.Client, 0)
	}
	if l.Products == nil {
		l.Products = make([]*domain.Product, 0)
	}
	if l.Invoices == nil {
		l.Invoices = make([]*domain.InvoiceRecord, 0)
	}
	if l.HistoryCache == nil {
		l.HistoryCache = make([]domain.HistoryEntry, 0)
	}
	return &l, nil
}

// EncodeInvoice serializes a single invoice, used for the working-invoice
// session slot.
func EncodeInvoice(inv *domain.Invoice) ([]byte, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice: %w", err)
	}
	return data, nil
}

// DecodeInvoice restores a single invoice from its JSON form
func DecodeInvoice(data []byte) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if inv.LineItems == nil {
		inv.LineItems = make([]domain.LineItem, 0)
	}
	return &inv, nil
}

// IsEncrypted reports whether the payload carries the encrypted envelope.
// Detection is by presence of both cipher and salt fields; anything else
// is treated as a plain document.
func IsEncrypted(data []byte) bool {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	return env.Cipher != "" && env.Salt != ""
}
