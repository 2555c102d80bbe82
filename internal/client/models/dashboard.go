package models

// SidebarItem is one navigation entry served by the dashboard sidebar
// endpoint. Prefix is the business role the item belongs to (e.g. "bumdes",
// "pokdarwis"); Slug addresses the business collection under that role.
type SidebarItem struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Slug   string `json:"slug"`
	Icon   string `json:"icon"`
}

// MenuItem is a business menu entry inside the statistics payload.
type MenuItem struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// SummaryTotals holds per-role income/outcome totals. The server reports
// them as preformatted decimal strings.
type SummaryTotals struct {
	TotalIncome  string `json:"total_income"`
	TotalOutcome string `json:"total_outcome"`
}

// Statistics is the dashboard home payload: the roles the user may manage,
// their menus, and the financial summary per role.
type Statistics struct {
	Roles   []map[string]string      `json:"roles"`
	Menus   map[string][]MenuItem    `json:"menus"`
	Summary map[string]SummaryTotals `json:"summary"`
}

// Card is a single headline figure shown above a business table, e.g.
// "total-transactions" or "net-balance".
type Card struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldType enumerates the server-described form field kinds. Rendering is
// keyed by this tag.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
)

// Field describes one input of a server-defined business form.
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// SystemInfo is the free-form key/value block from the system-information
// endpoint (server version, environment, uptime and the like).
type SystemInfo map[string]string
