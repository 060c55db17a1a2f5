package api

// LineItemType classifies a presented quote line.
type LineItemType string

const (
	ItemHeader   LineItemType = "header"
	ItemLabor    LineItemType = "labor"
	ItemMaterial LineItemType = "material"
	ItemPaint    LineItemType = "paint"
	ItemPrep     LineItemType = "prep"
	ItemCombined LineItemType = "combined"
	ItemTax      LineItemType = "tax"
	ItemTotal    LineItemType = "total"
)

// LineItem is one node of the presented quote tree. Amount is the
// authoritative money value of the node itself; sub-item amounts are separate
// contributions, so a node's subtree contributes Amount plus the sum of its
// SubItems. The tree is at most two levels deep (item -> sub-item).
//
// A header node's Amount is the rolled-up total of the non-header nodes in its
// group. It exists for section-subtotal display and is excluded from grand
// total math to avoid double counting.
type LineItem struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Quantity    float64      `json:"quantity,omitempty"`
	Unit        string       `json:"unit,omitempty"`
	Rate        float64      `json:"rate,omitempty"`
	Amount      float64      `json:"amount"`
	Type        LineItemType `json:"type"`
	SubItems    []LineItem   `json:"sub_items,omitempty"`
	GroupTitle  string       `json:"group_title,omitempty"`
}

// SubtreeAmount returns the node's own amount plus its sub-items. Headers
// contribute nothing.
func (li LineItem) SubtreeAmount() float64 {
	if li.Type == ItemHeader {
		return 0
	}
	total := li.Amount
	for _, sub := range li.SubItems {
		total += sub.SubtreeAmount()
	}
	return total
}

// FlatRow is one row of the flattened quote used by PDF rendering and
// persistence collaborators.
type FlatRow struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Rate        float64 `json:"rate,omitempty"`
	Amount      float64 `json:"amount"`
	Indent      int     `json:"indent"`
	IsHeader    bool    `json:"is_header"`
}

// QuoteTotals is the rollup output.
type QuoteTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
