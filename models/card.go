package models

// CardView is the view description of a single shoe card
type CardView struct {
	Href      string     `json:"href"`
	Image     ImageView  `json:"image"`
	Name      string     `json:"name"`
	ColorInfo string     `json:"colorInfo"`
	Price     PriceBlock `json:"price"`
	Badge     *BadgeView `json:"badge,omitempty"` // nil for the default variant
	Variant   string     `json:"variant"`
	Style     CardStyle  `json:"style"`
}

// CardStyle carries the theme values used for the name and color label
type CardStyle struct {
	NameColor      string `json:"nameColor"`
	NameWeight     int    `json:"nameWeight"`
	ColorInfoColor string `json:"colorInfoColor"`
}

type ImageView struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// PriceBlock holds the regular price and, for discounted shoes, the sale price
type PriceBlock struct {
	Regular PriceText  `json:"regular"`
	Sale    *PriceText `json:"sale,omitempty"`
}

// PriceText is a formatted price plus its styling
type PriceText struct {
	Text   string `json:"text"`
	Struck bool   `json:"struck"`
	Color  string `json:"color"`
	Weight int    `json:"weight,omitempty"`
}

// BadgeView is the corner flag shown for new releases and sales
type BadgeView struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	Color      string `json:"color"`
	Weight     int    `json:"weight"`
}

// GridView is the data passed to the grid page template
type GridView struct {
	Title string     `json:"title"`
	Cards []CardView `json:"cards"`
}
