package personnel

import (
	"time"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/google/uuid"
)

// Action represents a personnel action row.
type Action struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type        string     `gorm:"size:16;not null"`
	BranchID    *uuid.UUID `gorm:"type:uuid"`
	InitiatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	Notes       string     `gorm:"type:text"`
	Status      string     `gorm:"size:16;not null;index;default:'pending'"`
	ResolvedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Action model.
func (Action) TableName() string {
	return "personnel_actions"
}

func fromDomain(a *personnel.Action) Action {
	return Action{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Type:        string(a.Type),
		BranchID:    gormutil.NullUUID(a.BranchID),
		InitiatedBy: a.InitiatedBy,
		Notes:       a.Notes,
		Status:      string(a.Status),
		ResolvedBy:  gormutil.NullUUID(a.ResolvedBy),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *Action) toDomain() *personnel.Action {
	return &personnel.Action{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		Type:        personnel.ActionType(m.Type),
		BranchID:    gormutil.UUID(m.BranchID),
		InitiatedBy: m.InitiatedBy,
		Notes:       m.Notes,
		Case: workflow.Case{
			Status:     workflow.Status(m.Status),
			ResolvedBy: gormutil.UUID(m.ResolvedBy),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
