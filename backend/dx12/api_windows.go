//go:build windows

package dx12

import (
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/dx12"
)

func platformAPI() hal.Backend { return dx12.Backend{} }
