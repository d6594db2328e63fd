package profile

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

// ProfileDraft keeps the applicant's in-progress form as an opaque JSON
// blob. One draft per user, overwritten on every save.
type ProfileDraft struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"userId"`
	Data      datatypes.JSON `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// UserProfile is the submitted registration record. Key fields are
// normalized into columns, the full form survives in Data.
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"userId"`

	Nombres         string `gorm:"size:120" json:"nombres"`
	Apellidos       string `gorm:"size:120" json:"apellidos"`
	TipoDocumento   string `gorm:"size:40" json:"tipoDocumento"`
	NroDocumento    string `gorm:"size:40" json:"nroDocumento"`
	Pais            string `gorm:"size:80" json:"pais"`
	Departamento    string `gorm:"size:80" json:"departamento"`
	Ciudad          string `gorm:"size:80" json:"ciudad"`
	Direccion       string `gorm:"size:255" json:"direccion"`
	Institucion     string `gorm:"size:160" json:"institucion"`
	Cargo           string `gorm:"size:120" json:"cargo"`
	Telefono        string `gorm:"size:40" json:"telefono"`
	FechaNacimiento string `gorm:"size:20" json:"fechaNacimiento"`

	Status submission.Status `gorm:"size:30;not null;index" json:"status"`
	Data   datatypes.JSON    `json:"data"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
