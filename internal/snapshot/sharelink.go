package snapshot

import (
	"fmt"
	"net/url"

	"github.com/andy/ledgercraft/internal/domain"
)

// ShareParam is the query parameter carrying an embedded ledger
const ShareParam = "state"

// EncodeShareLink embeds the ledger in the base URL as a percent-encoded
// query parameter. The link is a one-shot import, not a live sync link.
func EncodeShareLink(base string, l *domain.Ledger) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	data, err := Encode(l)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(ShareParam, string(data))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DecodeShareLink extracts an embedded ledger from a shared URL. It
// returns the decoded ledger (nil when the parameter is absent) and the
// URL with the state parameter scrubbed.
func DecodeShareLink(raw string) (*domain.Ledger, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, raw, fmt.Errorf("invalid url: %w", err)
	}
	q := u.Query()
	encoded := q.Get(ShareParam)
	if encoded == "" {
		return nil, raw, nil
	}
	q.Del(ShareParam)
	u.RawQuery = q.Encode()

	l, err := Decode([]byte(encoded))
	if err != nil {
		return nil, u.String(), err
	}
	return l, u.String(), nil
}
