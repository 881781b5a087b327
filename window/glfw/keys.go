package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
)

var keyMap = func() map[glfw.Key]gpucontext.Key {
	m := map[glfw.Key]gpucontext.Key{
		glfw.KeyEscape:       gpucontext.KeyEscape,
		glfw.KeyTab:          gpucontext.KeyTab,
		glfw.KeyBackspace:    gpucontext.KeyBackspace,
		glfw.KeyEnter:        gpucontext.KeyEnter,
		glfw.KeySpace:        gpucontext.KeySpace,
		glfw.KeyInsert:       gpucontext.KeyInsert,
		glfw.KeyDelete:       gpucontext.KeyDelete,
		glfw.KeyHome:         gpucontext.KeyHome,
		glfw.KeyEnd:          gpucontext.KeyEnd,
		glfw.KeyPageUp:       gpucontext.KeyPageUp,
		glfw.KeyPageDown:     gpucontext.KeyPageDown,
		glfw.KeyLeft:         gpucontext.KeyLeft,
		glfw.KeyRight:        gpucontext.KeyRight,
		glfw.KeyUp:           gpucontext.KeyUp,
		glfw.KeyDown:         gpucontext.KeyDown,
		glfw.KeyLeftShift:    gpucontext.KeyLeftShift,
		glfw.KeyRightShift:   gpucontext.KeyRightShift,
		glfw.KeyLeftControl:  gpucontext.KeyLeftControl,
		glfw.KeyRightControl: gpucontext.KeyRightControl,
		glfw.KeyLeftAlt:      gpucontext.KeyLeftAlt,
		glfw.KeyRightAlt:     gpucontext.KeyRightAlt,
		glfw.KeyLeftSuper:    gpucontext.KeyLeftSuper,
		glfw.KeyRightSuper:   gpucontext.KeyRightSuper,
		glfw.KeyMinus:        gpucontext.KeyMinus,
		glfw.KeyEqual:        gpucontext.KeyEqual,
		glfw.KeyLeftBracket:  gpucontext.KeyLeftBracket,
		glfw.KeyRightBracket: gpucontext.KeyRightBracket,
		glfw.KeyBackslash:    gpucontext.KeyBackslash,
		glfw.KeySemicolon:    gpucontext.KeySemicolon,
		glfw.KeyApostrophe:   gpucontext.KeyApostrophe,
		glfw.KeyGraveAccent:  gpucontext.KeyGrave,
		glfw.KeyComma:        gpucontext.KeyComma,
		glfw.KeyPeriod:       gpucontext.KeyPeriod,
		glfw.KeySlash:        gpucontext.KeySlash,
		glfw.KeyKPDecimal:    gpucontext.KeyNumpadDecimal,
		glfw.KeyKPDivide:     gpucontext.KeyNumpadDivide,
		glfw.KeyKPMultiply:   gpucontext.KeyNumpadMultiply,
		glfw.KeyKPSubtract:   gpucontext.KeyNumpadSubtract,
		glfw.KeyKPAdd:        gpucontext.KeyNumpadAdd,
		glfw.KeyKPEnter:      gpucontext.KeyNumpadEnter,
		glfw.KeyCapsLock:     gpucontext.KeyCapsLock,
		glfw.KeyScrollLock:   gpucontext.KeyScrollLock,
		glfw.KeyNumLock:      gpucontext.KeyNumLock,
		glfw.KeyPrintScreen:  gpucontext.KeyPrintScreen,
		glfw.KeyPause:        gpucontext.KeyPause,
	}
	for i := 0; i < 26; i++ {
		m[glfw.KeyA+glfw.Key(i)] = gpucontext.KeyA + gpucontext.Key(i)
	}
	for i := 0; i < 10; i++ {
		m[glfw.Key0+glfw.Key(i)] = gpucontext.Key0 + gpucontext.Key(i)
		m[glfw.KeyKP0+glfw.Key(i)] = gpucontext.KeyNumpad0 + gpucontext.Key(i)
	}
	for i := 0; i < 12; i++ {
		m[glfw.KeyF1+glfw.Key(i)] = gpucontext.KeyF1 + gpucontext.Key(i)
	}
	return m
}()

// Key converts a GLFW key to a gpucontext key. Unmapped keys become
// KeyUnknown.
func Key(k glfw.Key) gpucontext.Key {
	if g, ok := keyMap[k]; ok {
		return g
	}
	return gpucontext.KeyUnknown
}

// Mods converts GLFW modifier bits.
func Mods(mods glfw.ModifierKey) gpucontext.Modifiers {
	var m gpucontext.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= gpucontext.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= gpucontext.ModControl
	}
	if mods&glfw.ModAlt != 0 {
		m |= gpucontext.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= gpucontext.ModSuper
	}
	return m
}

// MouseButton converts a GLFW mouse button. Buttons beyond the fifth are
// reported as unmapped.
func MouseButton(b glfw.MouseButton) (gpucontext.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return gpucontext.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return gpucontext.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return gpucontext.MouseButtonMiddle, true
	case glfw.MouseButton4:
		return gpucontext.MouseButton4, true
	case glfw.MouseButton5:
		return gpucontext.MouseButton5, true
	}
	return 0, false
}
