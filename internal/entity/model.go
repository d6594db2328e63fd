package entity

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

// EntityDraft keeps the in-progress entity form. One per user.
type EntityDraft struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"userId"`
	Data      datatypes.JSON `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Entity is the registered organization. The unique index on UserID
// enforces one entity per applicant at the database level.
type Entity struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"userId"`

	Name                  string `gorm:"size:200;not null" json:"name"`
	Telefono              string `gorm:"size:40" json:"telefono"`
	Correo                string `gorm:"size:160" json:"correo"`
	Web                   string `gorm:"size:160" json:"web"`
	Direccion             string `gorm:"size:255" json:"direccion"`
	TipoEntidad           string `gorm:"size:80" json:"tipoEntidad"`
	FechaConstitucion     string `gorm:"size:20" json:"fechaConstitucion"`
	MunicipioConstitucion string `gorm:"size:120" json:"municipioConstitucion"`
	RepresentanteLegal    string `gorm:"size:160" json:"representanteLegal"`
	NumeroComercial       string `gorm:"size:60" json:"numeroComercial"`
	NIT                   string `gorm:"size:40" json:"nit"`
	NacionalOExtranjera   string `gorm:"size:40" json:"nacionalOExtranjera"`

	Status submission.Status `gorm:"size:30;not null;index" json:"status"`
	Data   datatypes.JSON    `json:"data"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
