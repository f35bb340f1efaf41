// Package domain contains the core model for s2composite: Sentinel-2 tiles, resolutions,
// compositing settings and the naming conventions of sen2three products.
//
// The domain does not touch the filesystem or spawn processes. It only produces the
// names and glob patterns that infra adapters evaluate.
package domain
