package catalog

type Category string

const (
	CategoryRanks Category = "ranks"
	CategoryKeys  Category = "keys"
	CategoryCoins Category = "coins"
)

// Item is a purchasable shop entry. The catalog is fixed at build time;
// only the discount overlay changes what a buyer actually pays.
type Item struct {
	ID          string   `json:"id"`
	Category    Category `json:"type"`
	Name        string   `json:"name"`
	PriceNPR    int64    `json:"priceNPR"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}

var items = []Item{
	// Ranks
	{ID: "vip", Category: CategoryRanks, Name: "VIP Rank", PriceNPR: 100, Image: "../Assets/Images/Vip-r.png", Description: "VIP Chat Tag, 2 Home Points, Access to /fly"},
	{ID: "mvp", Category: CategoryRanks, Name: "ELITE Rank", PriceNPR: 200, Image: "../Assets/Images/Elite-r.png", Description: "ELITE Chat Tag, 5 Home Points, Access to /fly"},
	{ID: "pro", Category: CategoryRanks, Name: "NINJA Rank", PriceNPR: 350, Image: "../Assets/Images/King-r.png", Description: "NINJA Chat Tag, 8 Home Points, All Basic Commands"},
	{ID: "elite", Category: CategoryRanks, Name: "KING Rank", PriceNPR: 500, Image: "../Assets/Images/Infinity-r.png", Description: "KING Chat Tag, 12 Home Points, All Commands"},
	{ID: "legend", Category: CategoryRanks, Name: "Infinity Rank", PriceNPR: 1000, Image: "../Assets/Images/Boss-r.png", Description: "INFINITY Chat Tag, Unlimited Homes, All Features"},
	// Keys
	{ID: "manaslu-key", Category: CategoryKeys, Name: "Manaslu Key", PriceNPR: 30, Image: "../Assets/Images/terai.png", Description: "Opens Common Crates, guaranteed basic rewards"},
	{ID: "makalu-key", Category: CategoryKeys, Name: "Makalu Key", PriceNPR: 40, Image: "../Assets/Images/pahadi.png", Description: "Opens Rare Crates, includes enchanted items"},
	{ID: "lhotse-key", Category: CategoryKeys, Name: "Lhotse Key", PriceNPR: 50, Image: "../Assets/Images/himali.png", Description: "Opens Epic Crates, premium item drops"},
	{ID: "infinity-key", Category: CategoryKeys, Name: "Infinity Key", PriceNPR: 60, Image: "../Assets/Images/infinity.png", Description: "Opens Infinity Crates, highest tier rewards"},
	// Coins
	{ID: "coins-1000", Category: CategoryCoins, Name: "1,000 Coins", PriceNPR: 100, Image: "../Assets/Images/pile.png", Description: "1,000 In-Game Coins"},
	{ID: "coins-2000", Category: CategoryCoins, Name: "2,000 Coins", PriceNPR: 200, Image: "../Assets/Images/pouch.png", Description: "2,000 In-Game Coins"},
	{ID: "coins-3000", Category: CategoryCoins, Name: "3,000 Coins", PriceNPR: 300, Image: "../Assets/Images/bucket.png", Description: "3,000 In-Game Coins"},
	{ID: "coins-4000", Category: CategoryCoins, Name: "4,000 Coins", PriceNPR: 400, Image: "../Assets/Images/chest.png", Description: "4,000 In-Game Coins"},
	{ID: "coins-5000", Category: CategoryCoins, Name: "5,000 Coins", PriceNPR: 500, Image: "../Assets/Images/vault.png", Description: "5,000 In-Game Coins"},
}

var itemIndex = func() map[string]Item {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}()

// All returns the full catalog in display order.
func All() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func Find(id string) (Item, bool) {
	it, ok := itemIndex[id]
	return it, ok
}
