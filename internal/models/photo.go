package models

import "encoding/json"

// Photo is a reference to a blob held by the attachment store. It is embedded
// into each entity that can carry a picture.
type Photo struct {
	Key         string `gorm:"size:512" json:"-"`
	URL         string `gorm:"size:1024" json:"url"`
	Filename    string `gorm:"size:255" json:"filename"`
	ContentType string `gorm:"size:100" json:"content_type"`
	ByteSize    int64  `json:"byte_size"`
}

func (p Photo) Attached() bool {
	return p.Key != ""
}

// MarshalJSON renders a missing photo as null.
func (p Photo) MarshalJSON() ([]byte, error) {
	if !p.Attached() {
		return []byte("null"), nil
	}
	type plain Photo
	return json.Marshal(plain(p))
}
