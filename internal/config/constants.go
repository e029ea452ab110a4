// Package config holds Raoul's ambient, ecosystem-wide settings: the
// recognized source extension and the defaults a --config YAML file can
// override, grounded on the teacher's internal/config/constants.go
// (SourceFileExtensions-style package-level vars) and its direct
// gopkg.in/yaml.v3 dependency.
package config

// SourceFileExt is the canonical Raoul source extension.
const SourceFileExt = ".ra"

// SourceFileExtensions lists the recognized Raoul source extensions; the
// CLI does not check a source path's extension against it.
var SourceFileExtensions = []string{".ra"}

// MaxCallDepth mirrors internal/vm's own limit; exposed here so a
// --config file can override it without internal/vm importing internal/config
// (which would invert the dependency the CLI wiring expects).
const MaxCallDepth = 1024
