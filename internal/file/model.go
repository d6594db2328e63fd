package file

import "time"

// Document types carried by uploads.
const (
	DocTypeUsuario  = "USUARIO"
	DocTypeEntidad  = "ENTIDAD"
	DocTypeProyecto = "PROYECTO"
)

// File is one uploaded attachment. While the owning record is still a
// draft the row is linked only through DraftKey; on record creation the
// reassignment moves it to EntityID or ProjectID and clears DraftKey.
type File struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	CreatedByUserID uint    `gorm:"not null;index" json:"createdByUserId"`
	EntityID        *uint   `gorm:"index" json:"entityId,omitempty"`
	ProjectID       *uint   `gorm:"index" json:"projectId,omitempty"`
	DraftKey        *string `gorm:"index" json:"draftKey,omitempty"`
	FieldKey        *string `json:"fieldKey,omitempty"`
	DocType         string  `gorm:"size:20;index" json:"docType"`

	Name       string `gorm:"not null" json:"name"`
	StorageKey string `gorm:"not null;uniqueIndex" json:"-"`
	URL        string `gorm:"not null" json:"url"`
	Mime       string `json:"mime"`
	Size       int64  `json:"size"`

	CreatedAt time.Time `json:"createdAt"`
}
