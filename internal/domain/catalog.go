package domain

// CatalogItem is a product offered in the preparedness store.
// Prices are integer cents.
type CatalogItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Category    string `json:"category"`
	InStock     bool   `json:"inStock"`
}

// Catalog is an ordered, id-indexed product list.
type Catalog struct {
	items []CatalogItem
	byID  map[string]int
}

// NewCatalog indexes items by id. Later duplicates replace earlier ones.
func NewCatalog(items []CatalogItem) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(items))}
	for _, it := range items {
		if i, ok := c.byID[it.ID]; ok {
			c.items[i] = it
			continue
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// DefaultCatalog returns the store's stock list.
func DefaultCatalog() *Catalog {
	return NewCatalog([]CatalogItem{
		{ID: "1", Title: "Emergency Survival Kit", Description: "72-hour kit with food, water, and essential supplies", PriceCents: 12999, Category: "Kits", InStock: true},
		{ID: "2", Title: "First Aid Professional Kit", Description: "Comprehensive medical supplies for emergencies", PriceCents: 4999, Category: "Medical", InStock: true},
		{ID: "3", Title: "Solar Power Bank", Description: "20000mAh battery with solar charging capability", PriceCents: 3999, Category: "Electronics", InStock: true},
		{ID: "4", Title: "Water Filtration System", Description: "Portable water filter, filters up to 1000L", PriceCents: 2999, Category: "Water", InStock: true},
		{ID: "5", Title: "Emergency Food Supply", Description: "30-day supply of long-term storage food", PriceCents: 19999, Category: "Food", InStock: false},
		{ID: "6", Title: "Emergency Weather Radio", Description: "Hand-crank radio with NOAA weather alerts", PriceCents: 3499, Category: "Electronics", InStock: true},
	})
}

// Items returns the catalog in display order.
func (c *Catalog) Items() []CatalogItem {
	out := make([]CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds an item by id.
func (c *Catalog) Lookup(id string) (CatalogItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[i], true
}
