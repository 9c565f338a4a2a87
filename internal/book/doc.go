// Package book models the JSON book tree that mdBook hands to preprocessors.
//
// Decoding is lossless: members this package does not know about, and item
// variants it does not recognize, are kept as raw JSON and written back
// unchanged. Only Chapter.Content is meant to be modified by callers.
package book
