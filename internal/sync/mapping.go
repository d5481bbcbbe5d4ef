package sync

// Mapping binds Bitrix custom field keys and requisite attributes to their
// Planfix counterparts. The ids address fields configured in the Planfix
// workspace; they are part of the external contract and change only when
// the workspace does. Built once at startup and shared read-only.
type Mapping struct {
	// FileFields is ordered so task payloads come out deterministic.
	FileFields []FileFieldMapping

	ContractSourceKey string
	ContractFieldId   int

	TaxIdFieldId      int
	KppFieldId        int
	OgrnFieldId       int
	BikFieldId        int
	AccountNumFieldId int

	ContactTemplateId  int
	CompanyTemplateId  int
	MainTaskTemplateId int
	SubTaskTemplateId  int

	MainTaskName string
	SubTaskName  string

	SubTaskInfoFieldId int
	SubTaskInfoValue   string
}

type FileFieldMapping struct {
	SourceKey     string
	TargetFieldId int
}

func NewDefaultMapping() *Mapping {
	return &Mapping{
		FileFields: []FileFieldMapping{
			{SourceKey: "UF_CRM_1741696651", TargetFieldId: 114386}, // commercial proposal
			{SourceKey: "UF_CRM_1741696673", TargetFieldId: 114406}, // contract
			{SourceKey: "UF_CRM_1741696692", TargetFieldId: 114388}, // print logo
		},

		ContractSourceKey: "UF_CRM_1741696673",
		ContractFieldId:   114406,

		TaxIdFieldId:      114520,
		KppFieldId:        114522,
		OgrnFieldId:       114526,
		BikFieldId:        114528,
		AccountNumFieldId: 114530,

		ContactTemplateId:  1,
		CompanyTemplateId:  2,
		MainTaskTemplateId: 203,
		SubTaskTemplateId:  88,

		MainTaskName: "Подготовить и отправить клиенту договор и счёт.",
		SubTaskName:  "Подготовить дизайн.",

		SubTaskInfoFieldId: 114502,
		SubTaskInfoValue:   "дизайн-макет",
	}
}
