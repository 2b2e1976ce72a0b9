package domain

import "time"

type ImportType string

const (
	ImportStructure         ImportType = "structure"
	ImportRequirements      ImportType = "requirements"
	ImportSupplierResponses ImportType = "supplier_responses"
)

func (t ImportType) Valid() bool {
	switch t {
	case ImportStructure, ImportRequirements, ImportSupplierResponses:
		return true
	}
	return false
}

type ImportMode string

const (
	ImportAppend  ImportMode = "append"
	ImportReplace ImportMode = "replace"
)

func (m ImportMode) Valid() bool {
	return m == ImportAppend || m == ImportReplace
}

type ImportStatus string

const (
	ImportQueued ImportStatus = "queued"
)

// ImportRequest is a file hand-off accepted by the import endpoint and
// waiting for the processing pipeline.
type ImportRequest struct {
	ID           string       `json:"id" gorm:"primaryKey;size:26"`
	UserID       string       `json:"user_id" gorm:"size:64;not null;index"`
	RFPID        string       `json:"rfp_id" gorm:"column:rfp_id;size:64;not null;index"`
	Type         ImportType   `json:"type" gorm:"size:32;not null"`
	Mode         ImportMode   `json:"mode" gorm:"size:16;not null"`
	SupplierID   string       `json:"supplier_id,omitempty" gorm:"size:64"`
	SupplierName string       `json:"supplier_name,omitempty" gorm:"size:200"`
	VersionID    string       `json:"version_id,omitempty" gorm:"size:64"`
	Source       string       `json:"source" gorm:"size:16;not null"`
	Payload      []byte       `json:"-" gorm:"not null"`
	SizeBytes    int64        `json:"size_bytes" gorm:"not null"`
	Status       ImportStatus `json:"status" gorm:"size:16;not null;index"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;index"`
}

func (ImportRequest) TableName() string { return "import_requests" }
