package mailer

import (
	"fmt"
	"log"
)

// ServiceName identifies the mailer in the service hub
const ServiceName = "mailer"

// Service adapts a Client to the service lifecycle
// Init expects the public key as its first argument
type Service struct {
	*Client
}

// NewService wraps a client
func NewService(c *Client) *Service {
	return &Service{Client: c}
}

func (s *Service) Name() string           { return ServiceName }
func (s *Service) Dependencies() []string { return nil }

func (s *Service) Init(args ...any) error {
	if len(args) == 0 {
		return ErrMissingCredentials
	}
	key, ok := args[0].(string)
	if !ok {
		return fmt.Errorf("mailer: public key must be a string, got %T", args[0])
	}
	return s.Client.Init(key)
}

func (s *Service) Start() error {
	log.Printf("Mailer ready (endpoint %s)", s.endpoint)
	return nil
}

func (s *Service) Stop() error {
	return nil
}
