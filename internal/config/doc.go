// Package config loads, normalizes, and validates loom's TOML configuration.
//
// Configuration sections by subsystem:
//   - Paths: work, output, and log directories
//   - Tools: external decoder/encoder/muxer binaries and filter geometry
//   - Encoding: default video bitrate and encoder tuning knobs
//   - Ledger: conversion history database toggle
//   - Logging: log format and level
//
// Load resolves the config file (explicit path, ~/.config/loom/config.toml,
// or ./loom.toml), applies defaults, expands ~ in path fields, and validates
// the result.
package config
