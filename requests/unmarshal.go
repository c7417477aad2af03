package requests

import (
	"fmt"
	"os"

	"github.com/brettbedarf/filetree"
	"github.com/brettbedarf/filetree/adapters"
	"gopkg.in/yaml.v3"
)

// Unmarshal decodes a manifest, a YAML or JSON list of operations, into
// validated requests using reg to build each source. An empty document is
// an empty manifest.
func Unmarshal(data []byte, reg *adapters.Registry) ([]*filetree.Request, error) {
	var dtos []RequestDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	reqs := make([]*filetree.Request, 0, len(dtos))
	for i, dto := range dtos {
		req, err := convertRequestDTO(dto, reg)
		if err != nil {
			return nil, fmt.Errorf("request %d (%s %s): %w", i, dto.Op, dto.Path, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// UnmarshalFile reads and decodes the manifest at path.
func UnmarshalFile(path string, reg *adapters.Registry) ([]*filetree.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, reg)
}

func convertRequestDTO(dto RequestDTO, reg *adapters.Registry) (*filetree.Request, error) {
	sources, err := unmarshalSources(dto.Sources, reg)
	if err != nil {
		return nil, err
	}
	req := &filetree.Request{
		Op:      filetree.OpType(dto.Op),
		Path:    dto.Path,
		Sources: sources,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Helper function to process sources array
func unmarshalSources(nodes []yaml.Node, reg *adapters.Registry) ([]filetree.FileSource, error) {
	var sources []filetree.FileSource
	for i := range nodes {
		var dto SourceConfigDTO
		if err := nodes[i].Decode(&dto); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}

		// Use adapter registry to get provider
		provider, err := reg.NewProvider(&nodes[i])
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}

		sources = append(sources, filetree.FileSource{
			AdapterProvider: provider,
			Priority:        valueOrDefault(dto.Priority, i),
		})
	}
	return sources, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
