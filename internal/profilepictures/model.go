package profilepictures

import "time"

// CropGeometry is the crop rectangle captured by the editor, in natural
// image pixels.
type CropGeometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ProfilePicture is one stored avatar row. At most one row per user should
// be active, though the async reclaim path tolerates transient multiplicity.
type ProfilePicture struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	FilePath  string       `json:"filePath"`
	FileName  string       `json:"fileName"`
	FileSize  int64        `json:"fileSize"`
	Crop      CropGeometry `json:"crop"`
	ZoomLevel float64      `json:"zoomLevel"`
	Rotation  float64      `json:"rotation"`
	IsActive  bool         `json:"isActive"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
