package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Cards          int    `json:"cards"`
	Wishlist       int    `json:"wishlist"`
	MagicTricks    int    `json:"magic_tricks"`
	RepositoryType string `json:"repository_type"`
	Repository     any    `json:"repository,omitempty"`
	LoadWarning    string `json:"load_warning,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	st := ServiceState{
		Cards:          s.cards.Len(),
		Wishlist:       s.wishlist.Len(),
		MagicTricks:    s.tricks.Len(),
		RepositoryType: repoType,
	}
	if in, ok := s.repo.(introspection.Introspectable); ok {
		st.Repository = in.State()
	}
	if err := s.LoadWarning(); err != nil {
		st.LoadWarning = err.Error()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
