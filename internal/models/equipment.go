package models

import "time"

type EquipmentStatus string

var EquipmentStatuses = []EquipmentStatus{"Operational", "Maintenance", "Decommissioned", "In Repair", "Missing"}

func (s EquipmentStatus) Valid() bool {
	for _, v := range EquipmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Equipment struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	SerialNumber string          `json:"serialNumber"`
	AssignedTo   string          `json:"assignedTo,omitempty"` // user id
	AcquiredAt   time.Time       `json:"acquiredAt"`
	Status       EquipmentStatus `json:"status"`
	Details      string          `json:"details,omitempty"`
	BusinessUnit string          `json:"businessUnit,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
