package adapters

// NOTE: If build bloat becomes a concern for unused adapters
// look into build tags i.e. +build !nofile
// or nested packages with init() and main app can include just importing
// import (_ github.com/.../adapters/file)

type BuiltInAdapterType = string

const (
	TextAdapterType   BuiltInAdapterType = "text"
	Base64AdapterType BuiltInAdapterType = "base64"
	FileAdapterType   BuiltInAdapterType = "file"
)

// RegisterBuiltins registers all built-in adapters on r by default
// or only the specific ones if keys are provided
func RegisterBuiltins(r *Registry, adapters ...BuiltInAdapterType) {
	if len(adapters) == 0 {
		// Include all built-in adapters here when adding implementations
		adapters = append(adapters, TextAdapterType, Base64AdapterType, FileAdapterType)
	}

	for _, key := range adapters {
		switch key {
		case TextAdapterType:
			r.Register(TextAdapterType, decodeText)
		case Base64AdapterType:
			r.Register(Base64AdapterType, decodeBase64)
		case FileAdapterType:
			r.Register(FileAdapterType, decodeFile)
		}
	}
}
