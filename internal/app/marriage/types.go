package marriage

import "time"

type ProposeRequest struct {
	ProposerID  int64
	TargetID    int64
	TargetIsBot bool
}

// Draft is an unconfirmed proposal. No funds move until it is confirmed.
type Draft struct {
	TicketID   string    `json:"ticket_id"`
	ProposerID int64     `json:"proposer_id"`
	TargetID   int64     `json:"target_id"`
	Cost       int64     `json:"cost"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type Proposal struct {
	ProposerID int64 `json:"proposer_id"`
	TargetID   int64 `json:"target_id"`
	Cost       int64 `json:"cost"`
	Balance    int64 `json:"balance"`
}

type Marriage struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

type DivorceDraft struct {
	TicketID  string    `json:"ticket_id"`
	UserID    int64     `json:"user_id"`
	PartnerID int64     `json:"partner_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type draftPayload struct {
	targetID int64
	cost     int64
}
