package audio

import (
	"fmt"
	"log"
)

// Service adapts a SoundManager to the service lifecycle
// Init accepts an optional bool: true starts muted
type Service struct {
	*SoundManager
}

// NewService wraps a sound manager
func NewService(sm *SoundManager) *Service {
	return &Service{SoundManager: sm}
}

func (s *Service) Name() string           { return ServiceName }
func (s *Service) Dependencies() []string { return nil }

func (s *Service) Init(args ...any) error {
	if len(args) == 0 {
		return nil
	}
	muted, ok := args[0].(bool)
	if !ok {
		return fmt.Errorf("audio: mute flag must be a bool, got %T", args[0])
	}
	s.SetMuted(muted)
	return nil
}

// Start opens the device; a missing device is logged and tolerated
func (s *Service) Start() error {
	if s.Muted() {
		return nil
	}
	if err := s.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	return nil
}

func (s *Service) Stop() error {
	s.Cleanup()
	return nil
}
