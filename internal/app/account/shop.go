package account

import (
	"sort"

	"lizard-economy/internal/store"
)

type perkItem struct {
	Name   string
	Prices map[int]int64
}

var shopItems = map[store.Perk]perkItem{
	store.PerkPrefix:  {Name: "Prefix", Prices: map[int]int64{1: 20, 3: 40, 7: 100}},
	store.PerkAntitar: {Name: "Antitar", Prices: map[int]int64{1: 30, 3: 60, 7: 130}},
	store.PerkVIP:     {Name: "VIP", Prices: map[int]int64{1: 50, 3: 100, 7: 300}},
}

var perkOrder = []store.Perk{store.PerkPrefix, store.PerkAntitar, store.PerkVIP}

func perkPrice(perk store.Perk, days int) (int64, bool) {
	item, ok := shopItems[perk]
	if !ok {
		return 0, false
	}
	price, ok := item.Prices[days]
	return price, ok
}

// Catalogue lists every purchasable perk tier in display order.
func Catalogue() []ShopItem {
	out := make([]ShopItem, 0, len(perkOrder))
	for _, perk := range perkOrder {
		item := shopItems[perk]
		tiers := make([]ShopTier, 0, len(item.Prices))
		for days, price := range item.Prices {
			tiers = append(tiers, ShopTier{Days: days, Price: price})
		}
		sort.Slice(tiers, func(i, j int) bool { return tiers[i].Days < tiers[j].Days })
		out = append(out, ShopItem{Perk: string(perk), Name: item.Name, Tiers: tiers})
	}
	return out
}
