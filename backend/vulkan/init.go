package vulkan

import "github.com/gogpu/whisp/backend"

func init() {
	backend.Register(backend.KindVulkan, func() backend.Adapter {
		return New(Options{})
	})
}
