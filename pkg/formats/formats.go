// Package formats provides parsers for the mesh formats the viewer loads.
package formats
