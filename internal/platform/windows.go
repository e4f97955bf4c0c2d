package platform

// WindowsStrategy is a placeholder until tunnel control on Windows is
// implemented through the WireGuard service manager.
type WindowsStrategy struct {
	stub
}

// NewWindowsStrategy returns the Windows placeholder strategy.
func NewWindowsStrategy() *WindowsStrategy {
	return &WindowsStrategy{stub: stub{name: "windows"}}
}
