package entity

import "time"

// ChatExchange is one turn of AI conversation practice: the learner's
// message and the assistant's reply.
type ChatExchange struct {
	ID       int64
	Message  string
	Response string
	At       time.Time
}
