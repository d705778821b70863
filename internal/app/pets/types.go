package pets

import "time"

type EggOffer struct {
	Type    string   `json:"type"`
	Price   int64    `json:"price"`
	Species []string `json:"species"`
}

type Egg struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type EggPurchase struct {
	Egg     Egg   `json:"egg"`
	Balance int64 `json:"balance"`
}

type Pet struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Level     int        `json:"level"`
	FedAt     *time.Time `json:"fed_at,omitempty"`
	WateredAt *time.Time `json:"watered_at,omitempty"`
	WalkedAt  *time.Time `json:"walked_at,omitempty"`
	GrownAt   *time.Time `json:"grown_at,omitempty"`
	DiesAt    time.Time  `json:"dies_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type CareResult struct {
	Pet     Pet    `json:"pet"`
	Action  string `json:"action"`
	Cost    int64  `json:"cost"`
	Balance int64  `json:"balance"`
}
