package domain

// CartItem is the persisted form of a cart entry: a catalog id and a
// quantity of at least one.
type CartItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CartLine is a cart entry resolved against the catalog.
type CartLine struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (l CartLine) Subtotal() int64 {
	return l.Item.PriceCents * int64(l.Quantity)
}

// Cart keeps (item, quantity) pairs keyed by item id in insertion order.
// Every entry present has quantity >= 1.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from existing lines. Lines with quantity < 1 are
// dropped and repeated ids are merged.
func NewCart(lines ...CartLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i := c.index(l.Item.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) index(id string) int {
	for i, l := range c.lines {
		if l.Item.ID == id {
			return i
		}
	}
	return -1
}

// Add increments the item's quantity by one, inserting it with quantity one
// when absent.
func (c *Cart) Add(item CatalogItem) {
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, CartLine{Item: item, Quantity: 1})
}

// Remove deletes the entry for itemID regardless of its quantity.
// It reports whether an entry was removed.
func (c *Cart) Remove(itemID string) bool {
	i := c.index(itemID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// SetQuantity overwrites the stored quantity. Values below one, and ids not
// in the cart, leave the cart unchanged and return false.
func (c *Cart) SetQuantity(itemID string, n int) bool {
	if n < 1 {
		return false
	}
	i := c.index(itemID)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity = n
	return true
}

// Quantity returns the quantity stored for itemID, zero when absent.
func (c *Cart) Quantity(itemID string) int {
	if i := c.index(itemID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Contains reports whether the cart has an entry for itemID.
func (c *Cart) Contains(itemID string) bool {
	return c.index(itemID) >= 0
}

// Len is the number of distinct entries.
func (c *Cart) Len() int { return len(c.lines) }

// Lines returns a copy of the entries in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Items returns the persisted form of the cart.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.lines))
	for i, l := range c.lines {
		out[i] = CartItem{ItemID: l.Item.ID, Quantity: l.Quantity}
	}
	return out
}

// Total is the sum of price times quantity over all entries.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Checkout summarises a cart for display with shipping added.
type Checkout struct {
	Lines         []CartLine `json:"lines"`
	ItemCount     int        `json:"itemCount"`
	SubtotalCents int64      `json:"subtotalCents"`
	ShippingCents int64      `json:"shippingCents"`
	TotalCents    int64      `json:"totalCents"`
}

// Checkout returns the cart totals. Shipping is only charged on a
// non-empty cart.
func (c *Cart) Checkout(shippingCents int64) Checkout {
	out := Checkout{Lines: c.Lines(), SubtotalCents: c.Total()}
	for _, l := range c.lines {
		out.ItemCount += l.Quantity
	}
	if len(c.lines) > 0 {
		out.ShippingCents = shippingCents
	}
	out.TotalCents = out.SubtotalCents + out.ShippingCents
	return out
}
