//go:build !windows

package dx12

import "github.com/gogpu/wgpu/hal"

func platformAPI() hal.Backend { return nil }
