// Package metadata scrapes title, author, cover and synopsis from a source
// book page so the form can be prefilled. It only reads pages; submitting is
// left to the ingestion backend.
package metadata
