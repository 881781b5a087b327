package vulkan

import "errors"

const spirvMagic = 0x07230203

// ErrNotSPIRV is returned when a shader binary lacks the SPIR-V magic number.
var ErrNotSPIRV = errors.New("vulkan: not a SPIR-V binary")
