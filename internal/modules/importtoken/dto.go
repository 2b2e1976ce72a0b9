package importtoken

import "rfpcred/internal/domain"

type CreateImportTokenRequest struct {
	RFPID        string `json:"rfp_id" validate:"required,max=64"`
	ImportType   string `json:"import_type" validate:"required,oneof=structure requirements supplier_responses"`
	Mode         string `json:"mode" validate:"omitempty,oneof=append replace"`
	SupplierID   string `json:"supplier_id" validate:"omitempty,max=64"`
	SupplierName string `json:"supplier_name" validate:"omitempty,max=200"`
	VersionID    string `json:"version_id" validate:"omitempty,max=64"`
	FilePath     string `json:"file_path" validate:"omitempty,max=1024"`
}

func (r CreateImportTokenRequest) Target() domain.ImportTarget {
	return domain.ImportTarget{
		RFPID:        r.RFPID,
		Type:         domain.ImportType(r.ImportType),
		Mode:         domain.ImportMode(r.Mode),
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		VersionID:    r.VersionID,
	}
}
