// Package activity describes per-channel speech activity.
//
// Silence detectors report non-silent spans in seconds; the tagger works in
// milliseconds. ToMillis is the single conversion point between the two.
package activity
