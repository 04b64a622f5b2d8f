// Package formats provides readers and writers for wave configuration files
// and mesh frame exports.
package formats
