package settings

// Settings is the process-wide configuration singleton. The credential pair
// stores a bcrypt hash only, never the plaintext password.
type Settings struct {
	AdminUser     string `json:"admin_user"`
	AdminPassHash string `json:"admin_pass_hash"`
	Currency      string `json:"currency"`
	// SnipingExtensionSeconds is the trigger window: a bid landing within
	// this many seconds of the scheduled close extends the auction.
	SnipingExtensionSeconds int `json:"sniping_extension_seconds"`
	// ExtensionAmountSeconds is how far to push the close back, rounded up
	// to whole minutes when applied.
	ExtensionAmountSeconds int    `json:"extension_amount_seconds"`
	Timezone               string `json:"timezone"`
}

const (
	DefaultCurrency                = "$"
	DefaultSnipingExtensionSeconds = 120
	DefaultExtensionAmountSeconds  = 120
	DefaultTimezone                = "UTC"

	// MaxExtensionSeconds bounds both anti-sniping knobs on save.
	MaxExtensionSeconds = 3600
)

// Defaults returns the settings used on first run, before an admin hash has
// been assigned.
func Defaults() Settings {
	return Settings{
		AdminUser:               "admin",
		Currency:                DefaultCurrency,
		SnipingExtensionSeconds: DefaultSnipingExtensionSeconds,
		ExtensionAmountSeconds:  DefaultExtensionAmountSeconds,
		Timezone:                DefaultTimezone,
	}
}

// Clamp bounds the anti-sniping knobs to their allowed range.
func (s *Settings) Clamp() {
	s.SnipingExtensionSeconds = clamp(s.SnipingExtensionSeconds, 0, MaxExtensionSeconds)
	s.ExtensionAmountSeconds = clamp(s.ExtensionAmountSeconds, 0, MaxExtensionSeconds)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
