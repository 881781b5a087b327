package dx12

import "github.com/gogpu/whisp/backend"

func init() {
	backend.Register(backend.KindDX12, func() backend.Adapter {
		return New(Options{})
	})
}
