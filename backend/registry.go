package backend

import (
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
)

// Kind identifies a backend.
type Kind string

// Backend kinds.
const (
	KindDX12   Kind = "dx12"
	KindVulkan Kind = "vulkan"
	KindNull   Kind = "null"
)

func (k Kind) String() string { return string(k) }

// ParseKind maps a backend name to a Kind. It accepts the usual spellings
// (DX12, D3D12, Vulkan, VK, in either case) and reports false for anything
// it does not recognise, in which case KindDX12 is returned.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dx12", "d3d12":
		return KindDX12, true
	case "vulkan", "vk":
		return KindVulkan, true
	case "null", "none", "headless":
		return KindNull, true
	default:
		return KindDX12, false
	}
}

// Factory creates a new, uninitialized adapter.
type Factory func() Adapter

// registry holds registered backends. Priority order for Default:
// Vulkan > DX12 > Null.
var registry = gpucontext.NewRegistry[Adapter](
	gpucontext.WithPriority(string(KindVulkan), string(KindDX12), string(KindNull)),
)

var priority = []Kind{KindVulkan, KindDX12, KindNull}

// Register registers a backend factory. Backend packages call this from
// init. A second registration under the same kind replaces the first.
func Register(kind Kind, factory Factory) {
	registry.Register(string(kind), factory)
}

// Unregister removes a backend. This is useful for testing.
func Unregister(kind Kind) {
	registry.Unregister(string(kind))
}

// IsRegistered reports whether kind has a factory.
func IsRegistered(kind Kind) bool {
	return registry.Has(string(kind))
}

// Available returns the registered kinds, highest priority first.
func Available() []Kind {
	names := registry.Available()
	kinds := make([]Kind, 0, len(names))
	for _, k := range priority {
		if slices.Contains(names, string(k)) {
			kinds = append(kinds, k)
		}
	}
	var rest []Kind
	for _, n := range names {
		if !slices.Contains(priority, Kind(n)) {
			rest = append(rest, Kind(n))
		}
	}
	slices.Sort(rest)
	return append(kinds, rest...)
}

// New returns a fresh adapter of the given kind.
func New(kind Kind) (Adapter, error) {
	if !registry.Has(string(kind)) {
		return nil, ErrBackendNotAvailable
	}
	a := registry.Get(string(kind))
	if a == nil {
		return nil, ErrBackendNotAvailable
	}
	return a, nil
}

// Default returns the highest-priority registered kind, or "" if none.
func Default() Kind {
	return Kind(registry.BestName())
}
