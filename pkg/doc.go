// Package pkg provides the core libraries for Schemascope schema exploration.
//
// # Overview
//
// Schemascope turns a chart library's property schema into explorable
// three-level trees: the schema type, its settable properties, and those
// properties' nested properties, with every node linked to its
// documentation section. The pkg directory is organized into four main
// areas:
//
//  1. [schema] - The embedded catalog of explorable types
//  2. [treemap] - Tree building with per-level range filters
//  3. [docs] - Documentation link resolution and verification
//  4. [explorer] - Orchestration (lookup → build → link → render)
//
// # Architecture
//
// The typical data flow through Schemascope:
//
//	Catalog entry (embedded schema data)
//	         ↓
//	    [treemap] package (three-pass tree build + range filters)
//	         ↓
//	    [explorer] package (caching, stats, documentation links)
//	         ↓
//	    [export] package / HTTP API / TUI
//	         ↓
//	    SVG/PNG/DOT/JSON output
//
// Supporting packages: [cache] (pluggable byte caches: file, Redis,
// MongoDB), [config] (TOML configuration), [errors] (structured error
// codes), [httputil] (retry with backoff), [observability] (hook
// registries), [server] (JSON API and web UI), [buildinfo] (version
// stamping).
package pkg
