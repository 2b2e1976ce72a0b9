package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidImportTarget = errors.New("invalid import target")

// ImportTarget names where an uploaded file goes and how it is merged.
type ImportTarget struct {
	RFPID        string
	Type         ImportType
	Mode         ImportMode
	SupplierID   string
	SupplierName string
	VersionID    string
}

// Normalize trims fields, defaults Mode to append and checks the combination.
func (t *ImportTarget) Normalize() error {
	t.RFPID = strings.TrimSpace(t.RFPID)
	t.Type = ImportType(strings.TrimSpace(string(t.Type)))
	t.Mode = ImportMode(strings.TrimSpace(string(t.Mode)))
	t.SupplierID = strings.TrimSpace(t.SupplierID)
	t.SupplierName = strings.TrimSpace(t.SupplierName)
	t.VersionID = strings.TrimSpace(t.VersionID)

	if t.Mode == "" {
		t.Mode = ImportAppend
	}

	switch {
	case t.RFPID == "":
		return fmt.Errorf("%w: rfp_id is required", ErrInvalidImportTarget)
	case !t.Type.Valid():
		return fmt.Errorf("%w: type must be one of structure, requirements, supplier_responses", ErrInvalidImportTarget)
	case !t.Mode.Valid():
		return fmt.Errorf("%w: mode must be append or replace", ErrInvalidImportTarget)
	case t.Type == ImportSupplierResponses && t.SupplierID == "" && t.SupplierName == "":
		return fmt.Errorf("%w: supplier_id or supplier_name is required for supplier_responses", ErrInvalidImportTarget)
	}
	return nil
}
