// Package formats provides parsers for 3D model file formats.
package formats
