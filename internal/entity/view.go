package entity

type BlockKind string

const (
	BlockTitle       BlockKind = "title"
	BlockHeader      BlockKind = "header"
	BlockSubheader   BlockKind = "subheader"
	BlockMarkdown    BlockKind = "markdown"
	BlockText        BlockKind = "text"
	BlockInfo        BlockKind = "info"
	BlockSuccess     BlockKind = "success"
	BlockWarning     BlockKind = "warning"
	BlockError       BlockKind = "error"
	BlockImage       BlockKind = "image"
	BlockColumns     BlockKind = "columns"
	BlockNumberInput BlockKind = "number_input"
	BlockRadio       BlockKind = "radio"
	BlockButton      BlockKind = "button"
	BlockMap         BlockKind = "map"
)

type Block struct {
	Kind    BlockKind    `json:"kind"`
	Text    string       `json:"text,omitempty"`
	Caption string       `json:"caption,omitempty"`
	Image   *ImageBlock  `json:"image,omitempty"`
	Columns [][]Block    `json:"columns,omitempty"`
	Input   *NumberInput `json:"input,omitempty"`
	Radio   *Radio       `json:"radio,omitempty"`
	Button  *Button      `json:"button,omitempty"`
	Map     *MapWidget   `json:"map,omitempty"`
}

type ImageBlock struct {
	Asset AssetRef `json:"asset"`
	URL   string   `json:"url"`
}

type NumberInput struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Format string  `json:"format"`
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type Radio struct {
	Name    string     `json:"name"`
	Label   string     `json:"label"`
	Action  ActionKind `json:"action"`
	Options []Option   `json:"options"`
}

type Button struct {
	Label  string     `json:"label"`
	Action ActionKind `json:"action"`
}

type MapWidget struct {
	Center    Coordinate  `json:"center"`
	Zoom      int         `json:"zoom"`
	LastClick *Coordinate `json:"last_click,omitempty"`
}

type MenuItem struct {
	Name   PageName `json:"name"`
	Slug   string   `json:"slug"`
	Active bool     `json:"active"`
}

type View struct {
	Page      PageName   `json:"page"`
	PageTitle string     `json:"page_title"`
	Sidebar   string     `json:"sidebar"`
	Menu      []MenuItem `json:"menu"`
	Blocks    []Block    `json:"blocks"`
}

func (v *View) Add(blocks ...Block) {
	v.Blocks = append(v.Blocks, blocks...)
}
