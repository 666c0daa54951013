// Package submission drives one ingestion request from button press to
// result.
//
// # Overview
//
// A Controller moves through Idle, Submitting and then Succeeded or Failed
// before returning to Idle. Each phase appends to the diagnostic console
// (logbuf), and outcomes reach the user through the Notifier and Navigator
// capabilities the caller provides.
//
// # Phases
//
// Begin validates the form snapshot and builds the request. Send performs the
// POST. Finish classifies the result, clears the book URL on success, records
// the submission in history and navigates to /read/<novel_id>.
//
// The TUI calls Begin and Finish on its event loop and runs Send in a Bubble
// Tea command. The CLI calls Submit, which runs all three in order.
//
// # Re-entrancy
//
// While Submitting, Begin returns ErrInFlight and does nothing else, so rapid
// repeated submits produce exactly one request.
package submission
