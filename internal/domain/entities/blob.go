package entities

import (
	"encoding/base64"
	"unicode/utf8"
)

const (
	EncodingUTF8   = "utf-8"
	EncodingBase64 = "base64"

	ModeRegular    = "100644"
	ModeExecutable = "100755"
)

// Blob is the content of one changed file, ready to be uploaded to a hosting service.
type Blob struct {
	Path     string
	Content  string // raw text for utf-8 blobs, base64 text otherwise
	Encoding string
	Mode     string
}

// NewBlob chooses the upload encoding for raw file bytes: valid UTF-8 is sent
// as text, anything else as base64.
func NewBlob(path string, data []byte, executable bool) Blob {
	blob := Blob{
		Path:     path,
		Content:  string(data),
		Encoding: EncodingUTF8,
		Mode:     ModeRegular,
	}
	if !utf8.Valid(data) {
		blob.Content = base64.StdEncoding.EncodeToString(data)
		blob.Encoding = EncodingBase64
	}
	if executable {
		blob.Mode = ModeExecutable
	}
	return blob
}

// IsBinary reports whether the blob travels base64-encoded.
func (b Blob) IsBinary() bool {
	return b.Encoding == EncodingBase64
}

// Bytes returns the original file bytes.
func (b Blob) Bytes() ([]byte, error) {
	if b.IsBinary() {
		return base64.StdEncoding.DecodeString(b.Content)
	}
	return []byte(b.Content), nil
}
