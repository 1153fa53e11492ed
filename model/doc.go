// Package model provides the shared data types for PII detection:
// page geometry, text fragments, detector matches, and finalized
// regions.
//
// # Geometry
//
// All coordinates are page points with the origin at the top-left
// corner and y increasing downward, matching scanned-document
// ingestion output. [BBox] supports intersection, union, overlap and
// clamping calculations.
//
// # Pages and fragments
//
// A [PageText] holds the word-level [TextFragment] list produced by
// ingestion together with a deterministically built concatenated
// string. [BuildFullText] reconstructs that string from fragments in
// visual reading order; [ClusterLines] groups fragments into visual
// lines tolerant of ascender/descender jitter.
//
// # Detections and regions
//
// Detector adapters produce [DetectionMatch] values in some text
// coordinate space. The fusion engine turns surviving candidates into
// [PIIRegion] values, the user-facing output. Regions spanning several
// visual lines share a LinkedGroup id.
//
// Per-category tuning (word/line caps, digit minima, spatial gap
// factors) lives in static tables so adding a category is a data
// change.
package model
