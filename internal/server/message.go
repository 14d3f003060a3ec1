package server

import (
	"encoding/json"
	"time"

	"github.com/lox/handodds/internal/deck"
)

// MessageType identifies a WebSocket message
type MessageType string

const (
	// Client to server messages
	MessageTypeCalculate MessageType = "calculate"
	MessageTypeListDecks MessageType = "list_decks"

	// Server to client messages
	MessageTypeResult   MessageType = "result"
	MessageTypeDeckList MessageType = "deck_list"
	MessageTypeError    MessageType = "error"
)

// Error codes carried in ErrorData
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInvalidDeck    = "invalid_deck"
	ErrorCodeUnknownDeck    = "unknown_deck"
	ErrorCodeUnknownType    = "unknown_message_type"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// CalculateData asks for the probability of an inline deck, or of a deck
// loaded from the server's deck file when only DeckName is set.
type CalculateData struct {
	Deck     *DeckData `json:"deck,omitempty"`
	DeckName string    `json:"deckName,omitempty"`
}

type DeckData struct {
	Name       string         `json:"name,omitempty"`
	Size       int            `json:"size"`
	Hand       int            `json:"hand"`
	Categories []CategoryData `json:"categories"`
}

type CategoryData struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

// Server → Client Messages

type ResultData struct {
	Deck          string       `json:"deck,omitempty"`
	Probability   float64      `json:"probability"`
	Miscellaneous CategoryData `json:"miscellaneous"`
}

type DeckListData struct {
	Decks []string `json:"decks"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Deck converts the wire form into a deck model
func (d DeckData) Deck() *deck.Deck {
	out := deck.New(d.Name, d.Size, d.Hand)
	for _, c := range d.Categories {
		out.Add(c.Name, c.Amount, c.Min, c.Max)
	}
	return out
}

func categoryData(c deck.Category) CategoryData {
	return CategoryData{Name: c.Name, Amount: c.Amount, Min: c.Min, Max: c.Max}
}
