package component

import "time"

// WeaponState is the reload/cooldown phase of the missile bay
type WeaponState uint8

const (
	WeaponReady     WeaponState = iota // Bay loaded
	WeaponEmpty                        // Bay spent, no reload scheduled
	WeaponReloading                    // Reload task running
)

func (s WeaponState) String() string {
	switch s {
	case WeaponReady:
		return "ready"
	case WeaponEmpty:
		return "empty"
	case WeaponReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// WeaponConfig is the tuning of the missile launcher
type WeaponConfig struct {
	ReloadTime time.Duration
	AutoReload bool // Schedule the reload right after launch instead of on the next fire attempt
}
