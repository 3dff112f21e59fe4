package tui

import "github.com/harukisoda/project-manager/internal/domain"

// Msg is the interface for all ticket TUI messages.
//
//sumtype:decl
type Msg interface {
	sealed()
}

// MsgTicketsLoaded is sent when tickets are loaded from the store.
type MsgTicketsLoaded struct {
	Err     error
	Tickets []*domain.Ticket
}

func (MsgTicketsLoaded) sealed() {}
