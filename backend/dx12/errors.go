package dx12

import "errors"

// ErrUnsupportedPlatform is wrapped into the fallback warning when the
// platform has no Direct3D 12.
var ErrUnsupportedPlatform = errors.New("dx12: direct3d 12 is not available on this platform")
