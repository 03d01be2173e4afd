// Package targets loads sets of target addresses from text, JSON or CSV
// files for multi-target searches.
package targets
