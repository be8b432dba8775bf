package main

import (
	"encoding/json"
	"errors"
)

// Inbound frames are decoded exactly once, at the connection boundary, into
// this closed set of command types. Handlers switch on the concrete type
// instead of re-inspecting a loosely-typed "type" field.

type clientCommand interface {
	isCommand()
}

type joinCommand struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	Password   string `json:"password,omitempty"`
}

type startCommand struct {
	RoomID         string `json:"roomId"`
	ImposterCount  int    `json:"imposterCount"`
	RandomImposter bool   `json:"randomImposter"`
	ShowCategories bool   `json:"showCategories"`
}

type kickCommand struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type updateCountCommand struct {
	RoomID        string `json:"roomId"`
	ImposterCount int    `json:"imposterCount"`
}

type adminClaimCommand struct {
	RoomID  string `json:"roomId"`
	IsAdmin bool   `json:"isAdmin"`
}

type emoteCommand struct {
	RoomID    string `json:"roomId"`
	PlayerID  string `json:"playerId"`
	EmoteName string `json:"emoteName"`
}

func (joinCommand) isCommand()        {}
func (startCommand) isCommand()       {}
func (kickCommand) isCommand()        {}
func (updateCountCommand) isCommand() {}
func (adminClaimCommand) isCommand()  {}
func (emoteCommand) isCommand()       {}

var (
	errUnknownType   = errors.New("Unknown message type")
	errInvalidFormat = errors.New("Invalid message format")
)

// decodeClientMessage turns one raw frame into a typed command. The returned
// error's text is safe to send back to the client verbatim.
func decodeClientMessage(data []byte) (clientCommand, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errInvalidFormat
	}

	unmarshal := func(v clientCommand) (clientCommand, error) {
		if err := json.Unmarshal(data, v); err != nil {
			return nil, errInvalidFormat
		}
		return v, nil
	}

	switch envelope.Type {
	case "join":
		return unmarshal(&joinCommand{})
	case "start", "nextGame":
		return unmarshal(&startCommand{})
	case "kickPlayer":
		return unmarshal(&kickCommand{})
	case "updateImposterCount":
		return unmarshal(&updateCountCommand{})
	case "adminUpdate":
		return unmarshal(&adminClaimCommand{})
	case "emote":
		return unmarshal(&emoteCommand{})
	default:
		return nil, errUnknownType
	}
}

// Messages sent to clients.

type joinedMessage struct {
	Type           string `json:"type"` // "joined"
	IsAdmin        bool   `json:"isAdmin"`
	PlayerID       string `json:"playerId"`
	ShowCategories bool   `json:"showCategories"`

	// Only the admin receives the full round configuration.
	GameStarted    *bool `json:"gameStarted,omitempty"`
	ImposterCount  *int  `json:"imposterCount,omitempty"`
	RandomImposter *bool `json:"randomImposter,omitempty"`
}

type rosterEntry struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
	Reaction string `json:"reaction,omitempty"`
}

type playerCountMessage struct {
	Type    string        `json:"type"` // "playerCount"
	Count   int           `json:"count"`
	Players []rosterEntry `json:"players"`
}

// gameStartMessage is tailored per player: imposters get a null word and the
// names of their fellow imposters; everyone else gets the word.
type gameStartMessage struct {
	Type           string   `json:"type"` // "gameStart"
	Word           *string  `json:"word"`
	Category       *string  `json:"category"`
	Imposters      []string `json:"imposters"`
	ShowCategories bool     `json:"showCategories"`
	IsImposter     bool     `json:"isImposter"`
}

type imposterCountUpdatedMessage struct {
	Type  string `json:"type"` // "imposterCountUpdated"
	Count int    `json:"count"`
}

type adminUpdateMessage struct {
	Type           string `json:"type"` // "adminUpdate"
	IsAdmin        bool   `json:"isAdmin"`
	ShowCategories bool   `json:"showCategories"`
	GameStarted    bool   `json:"gameStarted"`
	ImposterCount  int    `json:"imposterCount"`
	RandomImposter bool   `json:"randomImposter"`
}

type kickedMessage struct {
	Type string `json:"type"` // "kicked"
}

type emoteEventMessage struct {
	Type       string `json:"type"` // "emote"
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	EmoteName  string `json:"emoteName"`
}

type errorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

func newError(message string) errorMessage {
	return errorMessage{Type: "error", Message: message}
}
