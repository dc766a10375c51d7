// Package config loads, normalizes, and validates sagedialog configuration.
//
// It supplies repository defaults mirroring the stock enhancement recipe,
// expands user paths (including tilde shortcuts), reads TOML files, and keeps
// every knob the CLI needs in one place: eligible extensions, equalizer
// bands, speech normalization parameters, output naming, tool binaries, and
// logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors. Filter
// parameters are carried as strings and passed to ffmpeg verbatim; this
// package never interprets them.
package config
