package schema

// 该文件定义模板与 Schema 的数据模型，供布局计算、渲染与调试 JSON 共用。

// Kind 标识一个 Schema 的种类（text/image/barcode）。
// 未识别的值保持原样，由渲染调度按"跳过"处理，而不是报错。
type Kind string

const (
	KindNone    Kind = ""
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindBarcode Kind = "barcode"
)

// Position 是 Schema 在其页面坐标系中的锚点（左上角，单位 mm，y 向下增长）。
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Schema 描述页面上一个可放置的区域：种类、位置、尺寸与样式。
// 文本类字段仅对 KindText 有意义；BarcodeType 仅对 KindBarcode 有意义。
type Schema struct {
	Name     string   `json:"name"`
	Type     Kind     `json:"type"`
	Position Position `json:"position"`
	Width    float64  `json:"width"`  // mm，同时是文本的折行上限
	Height   float64  `json:"height"` // mm

	// 文本样式
	FontName         string  `json:"fontName,omitempty"`
	FontSize         float64 `json:"fontSize,omitempty"`         // pt
	CharacterSpacing float64 `json:"characterSpacing,omitempty"` // pt
	LineHeight       float64 `json:"lineHeight,omitempty"`       // 倍数；0 表示单倍紧排（无额外行距）
	Alignment        string  `json:"alignment,omitempty"`        // left/center/right
	FontColor        string  `json:"fontColor,omitempty"`        // #RGB / #RRGGBB
	BackgroundColor  string  `json:"backgroundColor,omitempty"`

	Rotate float64 `json:"rotate,omitempty"` // 顺时针角度（度）

	// 条码
	BarcodeType string `json:"barcodeType,omitempty"` // qrcode/ean13/ean8/code39/code128/nw7/itf14/upca

	// 静态默认输入：当输入记录中没有同名键时使用
	Text string `json:"text,omitempty"`
}

// Template 是整份文档的声明：页面尺寸、元信息与按绘制顺序排列的 Schema。
// Pages 内的顺序就是绘制顺序——后出现的 Schema 覆盖先出现的。
type Template struct {
	Size   string       `json:"size,omitempty"`   // A4/A5/Letter；与 Width/Height 二选一
	Width  float64      `json:"width,omitempty"`  // mm
	Height float64      `json:"height,omitempty"` // mm
	Meta   DocumentMeta `json:"meta,omitempty"`
	Pages  [][]Schema   `json:"pages"`
}

// Inputs 是一组输入记录；每条记录按模板渲染出一份完整的页面序列。
type Inputs []map[string]string

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}
