// Package logbuf keeps the rolling diagnostic trail shown in the debug console.
//
// # Overview
//
// A Buffer holds the most recent entries (100 by default) in insertion order.
// When full, each Append evicts the oldest entry. Entries are timestamped with
// the local wall-clock time and never change after they are appended.
//
// # Auto-scroll
//
// Every Append notifies a ScrollScheduler. The scheduler is responsible for
// running the scroll only after the viewer has drawn the new entry; in the TUI
// this is a Bubble Tea command whose message arrives after the current frame.
//
//	buf := logbuf.New(logbuf.DefaultLimit, logbuf.WithScheduler(sched))
//	buf.Append("Form submitted")
//	lines := buf.Lines() // ["[14:02:11] Form submitted"]
//
// # Concurrency
//
// Buffers belong to one event loop and take no locks.
package logbuf
