// Package featurestore fetches the per-season raw tables the pipeline
// starts from: the regular season event feature store (one wide row per
// game) and the weekly player projection table.
//
// Two providers implement Provider. HTTPProvider downloads season files
// from URL templates, paced by a rate limiter and optionally mirrored to a
// raw cache directory. DirProvider reads the same files from disk, which
// is also the layout the raw cache and the featurebuild mirror write.
//
// Every table header is checked against the column taxonomy before any
// row is decoded; a missing column is a schema error, never a silent drop.
package featurestore
