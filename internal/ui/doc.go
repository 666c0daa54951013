// Package ui provides the Bubble Tea terminal interface for mtlreq.
//
// The form view edits a form.Model through one text input per field. Enter
// hands the snapshot to submission.Controller.Begin on the event loop, the
// POST runs in a command, and the result comes back as a message that is
// passed to Finish. The controller and the console buffer never touch the
// model directly: they report to an Effects queue that Update drains after
// every message.
//
//   - Toasts become stacked notifications that expire after ToastLifetime.
//   - Navigation switches to the reader view, which shows the reader link.
//   - Scroll requests become a command whose message arrives after the frame
//     that drew the new console lines, so the console follows its tail.
//
// Key bindings avoid letter keys because the inputs take printable text.
// F1 shows them all.
package ui
