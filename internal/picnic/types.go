package picnic

import (
	"encoding/json"
	"strconv"
)

// DecoratorType identifies the kind of annotation carried by a cart or
// search item. The set is closed: anything the service sends beyond the
// known kinds is mapped to DecoratorOther with the raw kind preserved.
type DecoratorType string

const (
	DecoratorUnavailable DecoratorType = "UNAVAILABLE"
	DecoratorPromo       DecoratorType = "PROMO"
	DecoratorQuantity    DecoratorType = "QUANTITY"
	DecoratorOther       DecoratorType = "OTHER"
)

// Decorator is a tagged annotation on a cart or search item. Quantity is
// set for QUANTITY decorators, Text for PROMO decorators, Kind for the
// raw type of OTHER decorators.
type Decorator struct {
	Type     DecoratorType
	Quantity int
	Text     string
	Kind     string
}

// UnmarshalJSON decodes the service's {"type": ..., ...} representation
// into the closed decorator variant.
func (d *Decorator) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     string `json:"type"`
		Quantity int    `json:"quantity"`
		Text     string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch DecoratorType(raw.Type) {
	case DecoratorUnavailable, DecoratorPromo, DecoratorQuantity:
		d.Type = DecoratorType(raw.Type)
	default:
		d.Type = DecoratorOther
		d.Kind = raw.Type
	}
	d.Quantity = raw.Quantity
	d.Text = raw.Text

	return nil
}

// MarshalJSON restores the wire representation, including the raw kind of
// OTHER decorators.
func (d Decorator) MarshalJSON() ([]byte, error) {
	typ := string(d.Type)
	if d.Type == DecoratorOther && d.Kind != "" {
		typ = d.Kind
	}
	return json.Marshal(struct {
		Type     string `json:"type"`
		Quantity int    `json:"quantity,omitempty"`
		Text     string `json:"text,omitempty"`
	}{Type: typ, Quantity: d.Quantity, Text: d.Text})
}

// UnitQuantity is the tokenised packaging description of a product, e.g.
// ["6", "stuks"] or ["1", "L"].
type UnitQuantity []string

// PackSize parses the leading token as the number of units in the
// package. ok is false when the token is not an integer.
func (u UnitQuantity) PackSize() (int, bool) {
	if len(u) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(u[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Unit returns the unit label token, e.g. "L" for ["1", "L"]. Empty when
// the packaging carries no label.
func (u UnitQuantity) Unit() string {
	if len(u) < 2 {
		return ""
	}
	return u[len(u)-1]
}

// ContainsUnit reports whether the packaging carries the given unit label
// as one of its tokens.
func (u UnitQuantity) ContainsUnit(unit string) bool {
	if unit == "" {
		return false
	}
	for _, tok := range u {
		if tok == unit {
			return true
		}
	}
	return false
}

// Equal reports whether two packagings are token-for-token identical.
func (u UnitQuantity) Equal(other UnitQuantity) bool {
	if len(u) != len(other) {
		return false
	}
	for i := range u {
		if u[i] != other[i] {
			return false
		}
	}
	return true
}

// CartItem is one purchased article in the shopping cart.
type CartItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	UnitQuantity UnitQuantity `json:"unit_quantity"`
	Decorators   []Decorator  `json:"decorators"`
}

// Quantity returns the purchased count from the first QUANTITY decorator,
// or 0 when the item carries none.
func (c CartItem) Quantity() int {
	for _, d := range c.Decorators {
		if d.Type == DecoratorQuantity {
			return d.Quantity
		}
	}
	return 0
}

// IsUnavailable reports whether the item carries an UNAVAILABLE decorator.
func (c CartItem) IsUnavailable() bool {
	for _, d := range c.Decorators {
		if d.Type == DecoratorUnavailable {
			return true
		}
	}
	return false
}

// ArticleType classifies a search result.
type ArticleType string

// ArticleTypeSingle marks an individually purchasable article; only these
// participate in pack-size combination.
const ArticleTypeSingle ArticleType = "SINGLE_ARTICLE"

// SearchResult is one article returned by the product search. It is a
// superset of CartItem used to discover alternative packagings.
type SearchResult struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         ArticleType  `json:"type"`
	UnitQuantity UnitQuantity `json:"unit_quantity"`
	Decorators   []Decorator  `json:"decorators"`
}

// PromoText returns the text of the last PROMO decorator, if any.
func (s SearchResult) PromoText() (string, bool) {
	text := ""
	found := false
	for _, d := range s.Decorators {
		if d.Type == DecoratorPromo {
			text = d.Text
			found = true
		}
	}
	return text, found
}

// HasPromo reports whether the result carries a PROMO decorator.
func (s SearchResult) HasPromo() bool {
	_, ok := s.PromoText()
	return ok
}
