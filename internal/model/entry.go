package model

import (
	"strings"
	"time"
)

// FolderMimeType marks folder rows in the mime_type column
const FolderMimeType = "folder"

// Entry is a single node of a user's file tree. Folders have no blob
// behind them, so StoragePath is empty and Size is always 0.
type Entry struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	NameFolded  string    `gorm:"not null;index" json:"-"` // lowercased Name, used by search
	StoragePath string    `gorm:"index" json:"-"`
	Size        int64     `gorm:"not null" json:"size"`
	MimeType    string    `gorm:"not null" json:"mime_type"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	ParentID    *string   `gorm:"index;size:36" json:"parent_id"`
	Parent      *Entry    `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	IsFolder    bool      `gorm:"not null" json:"is_folder"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FoldName is the case folded form stored in NameFolded. It's done in Go
// because sqlite's LOWER only folds ASCII.
func FoldName(name string) string {
	return strings.ToLower(name)
}

func (Entry) TableName() string {
	return "files"
}
