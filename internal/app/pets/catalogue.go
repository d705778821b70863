package pets

import (
	"time"

	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/store"
)

type eggKind struct {
	Price   int64
	Species []string
}

var eggKinds = map[string]eggKind{
	"common":    {Price: 100, Species: []string{"Gecko", "Skink", "Anole", "Green iguana"}},
	"rare":      {Price: 500, Species: []string{"Chameleon", "Bearded dragon", "Monitor"}},
	"epic":      {Price: 1500, Species: []string{"Basilisk", "Frilled lizard", "Gila monster"}},
	"legendary": {Price: 5000, Species: []string{"Komodo dragon", "Golden tuatara"}},
}

var eggOrder = []string{"common", "rare", "epic", "legendary"}

type careRule struct {
	Cost     int64
	Cooldown time.Duration
	MinLevel int
	Kind     cooldown.Kind
}

var careRules = map[store.CareAction]careRule{
	store.CareFeed:  {Cost: 10, Cooldown: 4 * time.Hour, MinLevel: 1, Kind: cooldown.KindPetFeed},
	store.CareWater: {Cost: 15, Cooldown: 6 * time.Hour, MinLevel: 3, Kind: cooldown.KindPetWater},
	store.CareWalk:  {Cost: 20, Cooldown: 8 * time.Hour, MinLevel: 5, Kind: cooldown.KindPetWalk},
	store.CareGrow:  {Cost: 50, Cooldown: 24 * time.Hour, MinLevel: 1, Kind: cooldown.KindPetGrow},
}

func lastStamp(p store.Pet, action store.CareAction) time.Time {
	switch action {
	case store.CareFeed:
		return p.FedAt
	case store.CareWater:
		return p.WateredAt
	case store.CareWalk:
		return p.WalkedAt
	case store.CareGrow:
		return p.GrownAt
	}
	return time.Time{}
}

// EggCatalogue lists the purchasable eggs from cheapest to rarest.
func EggCatalogue() []EggOffer {
	out := make([]EggOffer, 0, len(eggOrder))
	for _, name := range eggOrder {
		k := eggKinds[name]
		out = append(out, EggOffer{Type: name, Price: k.Price, Species: append([]string(nil), k.Species...)})
	}
	return out
}

func cooldownPolicy(r careRule) cooldown.Policy {
	return cooldown.Policy{Kind: r.Kind, Duration: r.Cooldown}
}
