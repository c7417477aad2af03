package requests

import "gopkg.in/yaml.v3"

// RequestDTO is the manifest representation of [filetree.Request]
type RequestDTO struct {
	Op      string      `yaml:"op"`
	Path    string      `yaml:"path"`
	Sources []yaml.Node `yaml:"sources,omitempty"`
}

// SourceConfigDTO is the manifest representation of static [filetree.FileSource] fields
//
// Additional fields depend on the "type" value:
//
// Ex. For type="file" (see [adapters.LocalFileSource]):
//
//	path:     /etc/hostname
//	max_size: 4096
//
// See adapters package for built-ins complete field specifications.
type SourceConfigDTO struct {
	Type     string `yaml:"type"`
	Priority *int   `yaml:"priority,omitempty"` // Lower number = higher priority, defaults to array index
}
