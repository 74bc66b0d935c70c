//go:build windows

package modkey

import "golang.org/x/sys/windows"

const vkCapital = 0x14

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procGetKeyState = user32.NewProc("GetKeyState")
)

func platformProbes() []prober {
	return []prober{keyStateProbe{}}
}

// keyStateProbe reads the toggle bit of the caps lock virtual key.
type keyStateProbe struct{}

func (keyStateProbe) Available() bool {
	return procGetKeyState.Find() == nil
}

func (keyStateProbe) Read() (bool, bool) {
	if procGetKeyState.Find() != nil {
		return false, false
	}
	state, _, _ := procGetKeyState.Call(uintptr(vkCapital))
	return state&0x0001 != 0, true
}
