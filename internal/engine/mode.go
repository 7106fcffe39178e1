package engine

// Mode is the engine's data-source mode, resolved once at startup and passed
// by value into every fetcher. It is never mutated for the process lifetime.
type Mode int

const (
	// ModeSimulated substitutes bounded-random values for every signal
	ModeSimulated Mode = iota
	// ModeLive attempts vendor call paths before falling back to simulation
	ModeLive
)

func (m Mode) String() string {
	if m == ModeLive {
		return "live"
	}
	return "simulated"
}

// Placeholder values shipped in the .env template. Credentials left at these
// values count as missing.
const (
	placeholderUsername = "your_earthdata_username_here"
	placeholderPassword = "your_earthdata_password_here"
)

// ResolveMode returns ModeLive only when both credentials are present and
// neither is the template placeholder. No network call validates them here:
// live means "vendor calls will be attempted", not that they will succeed.
func ResolveMode(username, password string) Mode {
	if username == "" || password == "" {
		return ModeSimulated
	}
	if username == placeholderUsername || password == placeholderPassword {
		return ModeSimulated
	}
	return ModeLive
}
