package dx12

import (
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// emptyAPI is a HAL whose instance enumerates no adapters.
type emptyAPI struct{ noop.API }

func (emptyAPI) CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error) {
	return &emptyInstance{}, nil
}

type emptyInstance struct{ noop.Instance }

func (*emptyInstance) EnumerateAdapters(hal.Surface) []hal.ExposedAdapter { return nil }
