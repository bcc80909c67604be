package app

// Message types for the bubbletea app.

// PrefsSavedMsg is sent when a preferences write completes.
type PrefsSavedMsg struct {
	Err error
}

// ErrorMsg is a general error message.
type ErrorMsg struct {
	Err error
}
