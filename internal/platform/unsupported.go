package platform

// UnsupportedStrategy stands in on hosts with no tunnel tooling support.
type UnsupportedStrategy struct {
	stub
}

// NewUnsupportedStrategy returns the strategy for unsupported hosts.
func NewUnsupportedStrategy() *UnsupportedStrategy {
	return &UnsupportedStrategy{stub: stub{name: "unsupported"}}
}
