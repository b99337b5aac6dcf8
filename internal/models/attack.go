package models

// Attack is a weapon or technique owned by exactly one Mech.
type Attack struct {
	ID            uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string `json:"name" gorm:"type:varchar(80);not null"`
	AttackPotency int    `json:"attack_potency" gorm:"not null"`
	MechID        uint   `json:"mech_id" gorm:"not null;index"`
	Mech          *Mech  `json:"mech,omitempty"`
}
