package domain

// Currency describes how amounts are presented
type Currency struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
	Locale string `json:"locale"`
}

// Settings is the single global preferences record. Its lifecycle is the
// lifetime of the ledger.
type Settings struct {
	Accent   string   `json:"accent"`
	Font     string   `json:"font"`
	Currency Currency `json:"currency"`
	Theme    string   `json:"theme"`
	AutoSave bool     `json:"autoSave"`
	Footer   string   `json:"footer"`
}

// DefaultSettings returns the settings a fresh ledger starts with
func DefaultSettings() Settings {
	return Settings{
		Accent:   "#6366f1",
		Font:     "'Inter', sans-serif",
		Currency: Currency{Symbol: "$", Code: "USD", Locale: "en-US"},
		Theme:    "classic",
		AutoSave: true,
		Footer:   "Thank you for your business.",
	}
}
