package audio

import (
	"testing"
)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayLaunch()
	sm.PlayReloaded()
	sm.PlayDryFire()
	sm.Cleanup()

	if sm.Played(SoundLaunch) != 0 {
		t.Error("Expected nothing played before initialization")
	}
}

// TestSoundManagerDisabled verifies a muted manager never touches the speaker
func TestSoundManagerDisabled(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("Disabled initialization should succeed, got: %v", err)
	}
	if sm.IsInitialized() {
		t.Error("Disabled manager should not initialize the speaker")
	}
	sm.PlayLaunch()
	if sm.Played(SoundLaunch) != 0 {
		t.Error("Disabled manager should not play")
	}
}

// TestSoundManagerInitialization verifies sound manager can be initialized, played and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(nil)

	// Speaker initialization may fail in CI/test environments without audio devices
	err := sm.Initialize()
	if err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	// Second initialization is a no-op
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}

	sm.PlayLaunch()
	sm.PlayLaunch()
	sm.PlayDryFire()
	if got := sm.Played(SoundLaunch); got != 2 {
		t.Errorf("Expected 2 launch cues, got %d", got)
	}
	if got := sm.Played(SoundType(99)); got != 0 {
		t.Errorf("Expected 0 for unknown sound, got %d", got)
	}

	sm.Cleanup()
	if sm.IsInitialized() {
		t.Error("Expected cleanup to reset initialization")
	}
}
