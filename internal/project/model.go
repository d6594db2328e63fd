package project

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

// ProjectDraft keeps the in-progress project form. One per user, the
// draft of the next project being filled in.
type ProjectDraft struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"userId"`
	Data      datatypes.JSON `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Project is one mitigation initiative registered under an approved
// entity. An entity can hold any number of projects.
type Project struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;index" json:"userId"`
	EntityID uint `gorm:"not null;index" json:"entityId"`

	Title              string `gorm:"size:200;not null" json:"title"`
	TitularMedida      string `gorm:"size:160" json:"titularMedida"`
	RepresentanteLegal string `gorm:"size:160" json:"representanteLegal"`
	NumeroIdentidad    string `gorm:"size:40" json:"numeroIdentidad"`
	NumeroDocNotariado string `gorm:"size:60" json:"numeroDocNotariado"`
	ModeloMercado      string `gorm:"size:160" json:"modeloMercado"`
	AreaProyecto       string `gorm:"size:160" json:"areaProyecto"`

	Status submission.Status `gorm:"size:30;not null;index" json:"status"`
	Data   datatypes.JSON    `json:"data"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
