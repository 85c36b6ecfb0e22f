package tui

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenCompanyFormMsg tells the settings screen to open the company profile form
type OpenCompanyFormMsg struct{}

// firstRunCheckMsg reports whether a company profile has been configured
type firstRunCheckMsg struct {
	hasCompany bool
}
