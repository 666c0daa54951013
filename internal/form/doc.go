// Package form holds the ingestion request form's field values.
//
// A State is an immutable snapshot; every edit through Model.SetField swaps in
// a new State, so the value read at submit time is always consistent. Field
// constants double as the JSON keys of the ingestion payload.
package form
