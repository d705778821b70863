package platforms

import (
	"context"
	"errors"
)

// ErrPermanent marks a delivery failure that retrying cannot fix, such as a
// user who blocked the bot.
var ErrPermanent = errors.New("permanent_delivery_failure")

type Field struct {
	Name  string
	Value string
}

type Message struct {
	Title  string
	Text   string
	Color  int
	Fields []Field
}

type Adapter interface {
	Name() string
	Send(ctx context.Context, endpoint string, msg Message) error
}
