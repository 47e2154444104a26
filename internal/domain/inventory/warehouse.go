package inventory

import (
	"strings"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Warehouse is a stocking location inside one country
type Warehouse struct {
	shared.BaseEntity
	Code        string
	Name        string
	CountryCode string
	Active      bool
}

// NewWarehouse creates an active warehouse
func NewWarehouse(code, name, countryCode string) (*Warehouse, error) {
	countryCode = NormalizeCountryCode(countryCode)
	if !IsCountryCode(countryCode) {
		return nil, shared.NewDomainError("INVALID_COUNTRY_CODE", "Country code must be two letters")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	return &Warehouse{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Name:        strings.TrimSpace(name),
		CountryCode: countryCode,
		Active:      true,
	}, nil
}

// Deactivate stops the warehouse from receiving new movements
func (w *Warehouse) Deactivate() {
	w.Active = false
	w.Touch()
}

// Activate re-enables the warehouse
func (w *Warehouse) Activate() {
	w.Active = true
	w.Touch()
}

// LocationCountryIndex maps warehouse id to country code
func LocationCountryIndex(warehouses []Warehouse) map[uuid.UUID]string {
	index := make(map[uuid.UUID]string, len(warehouses))
	for _, w := range warehouses {
		index[w.ID] = w.CountryCode
	}
	return index
}
