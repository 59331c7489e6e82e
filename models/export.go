package models

// ExportRequest selects which clients and which sections go into a CSV or
// JSON export.
type ExportRequest struct {
	ClientIDs           []string `json:"clientIds" validate:"required,min=1"`
	IncludePersonalData bool     `json:"includePersonalData"`
	IncludeCheckups     bool     `json:"includeCheckups"`
	Format              string   `json:"format" validate:"required,oneof=csv json"`
}

// ClientExport is the in-memory snapshot an export is generated from.
// It is assembled in one fetch pass; the generators never re-fetch,
// re-validate or recompute the stored BMI.
type ClientExport struct {
	Client   Client
	Checkups []Checkup
}
