// Package main hosts the mtlreq entrypoint and command graph.
//
// Without a subcommand mtlreq opens the request form in the terminal. The
// submit, history and sites commands cover the same flow for scripts: they
// build the same components through internal/app and print plain text.
package main
