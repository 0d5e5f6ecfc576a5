package quote

// Stage is a step of the quote wizard. Stages are linear.
type Stage int

const (
	StageNeed Stage = iota
	StageDetails
	StageLogistics
	StageCompany
	StageReview
)

// Stages lists every stage in order
var Stages = []Stage{StageNeed, StageDetails, StageLogistics, StageCompany, StageReview}

func (s Stage) String() string {
	switch s {
	case StageNeed:
		return "need"
	case StageDetails:
		return "details"
	case StageLogistics:
		return "logistics"
	case StageCompany:
		return "company"
	case StageReview:
		return "review"
	default:
		return "unknown"
	}
}

// Field names a wizard input. Values match the form and JSON names.
type Field string

const (
	FieldNeeds    Field = "needs"
	FieldProduct  Field = "product"
	FieldLead     Field = "pb"
	FieldSize     Field = "size"
	FieldQuantity Field = "quantity"
	FieldNotes    Field = "notes"
	FieldAddress  Field = "address"
	FieldDeadline Field = "deadline"
	FieldCompany  Field = "company"
	FieldContact  Field = "contact"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
)

// stageFields lists the fields each stage owns. Needs are changed with ToggleNeed.
var stageFields = map[Stage][]Field{
	StageNeed:      {FieldNeeds},
	StageDetails:   {FieldProduct, FieldLead, FieldSize, FieldQuantity, FieldNotes},
	StageLogistics: {FieldAddress, FieldDeadline},
	StageCompany:   {FieldCompany, FieldContact, FieldEmail, FieldPhone},
	StageReview:    nil,
}

// gateFields are validated before Next may leave a stage
var gateFields = map[Stage][]Field{
	StageNeed:    {FieldNeeds},
	StageCompany: {FieldCompany, FieldContact, FieldEmail},
}

// FieldsOf returns the fields owned by stage
func FieldsOf(stage Stage) []Field {
	return stageFields[stage]
}

// OwnerOf returns the stage that owns field
func OwnerOf(field Field) (Stage, bool) {
	for stage, fields := range stageFields {
		for _, f := range fields {
			if f == field {
				return stage, true
			}
		}
	}
	return 0, false
}
