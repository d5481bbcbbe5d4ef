package planfix

// Planfix filter type codes used by the sync. The codes address built-in
// directory fields; custom fields additionally carry the field id.
const (
	FilterContactPhone  = 4003
	FilterContactName   = 4014
	FilterContactCustom = 4101
	FilterUserEmail     = 9003
)

type ListRequest struct {
	Offset   int      `json:"offset"`
	PageSize int      `json:"pageSize"`
	Fields   string   `json:"fields"`
	Filters  []Filter `json:"filters,omitempty"`
}

// Filter addresses a directory field. Field is a pointer so a filter can
// carry an explicit "field": 0 (the user-email lookup requires it) while
// the built-in contact filters omit the key entirely.
type Filter struct {
	Type     int         `json:"type"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
	Field    *int        `json:"field,omitempty"`
}

type ContactsResp struct {
	Result   string     `json:"result"`
	Contacts []IdHolder `json:"contacts"`
}

type UsersResp struct {
	Result string     `json:"result"`
	Users  []IdHolder `json:"users"`
}

type PostResp struct {
	Result string `json:"result"`
	Id     int    `json:"id"`
}

type IdHolder struct {
	Id int `json:"id"`
}

type TemplateRef struct {
	Id int `json:"id"`
}

type Phone struct {
	Number string `json:"number"`
	Type   int    `json:"type"`
}

type FieldRef struct {
	Id int `json:"id"`
}

type CustomFieldValue struct {
	Field FieldRef    `json:"field"`
	Value interface{} `json:"value"`
}

type ContactPostBody struct {
	Id              int                `json:"id,omitempty"`
	Template        *TemplateRef       `json:"template,omitempty"`
	Name            string             `json:"name"`
	Lastname        string             `json:"lastname,omitempty"`
	IsCompany       bool               `json:"isCompany"`
	Email           string             `json:"email,omitempty"`
	Address         string             `json:"address,omitempty"`
	Phones          []Phone            `json:"phones"`
	CustomFieldData []CustomFieldValue `json:"customFieldData,omitempty"`
	Contacts        []IdHolder         `json:"contacts,omitempty"`
}

type Assignees struct {
	Users []AssigneeRef `json:"users"`
}

// AssigneeRef ids use Planfix's prefixed form, e.g. "user:123".
type AssigneeRef struct {
	Id string `json:"id"`
}

// Counterparty is always present on task bodies; a nil id is serialized as
// null, which Planfix accepts as "no counterparty".
type Counterparty struct {
	Id *int `json:"id"`
}

type TaskPostBody struct {
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Assignees       Assignees          `json:"assignees"`
	Counterparty    Counterparty       `json:"counterparty"`
	Template        *TemplateRef       `json:"template,omitempty"`
	Parent          *IdHolder          `json:"parent,omitempty"`
	CustomFieldData []CustomFieldValue `json:"customFieldData,omitempty"`
}
