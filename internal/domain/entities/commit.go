package entities

import (
	"time"

	"github.com/valyala/fasttemplate"
)

const (
	// DefaultCommitTemplate renders the message used when the operator leaves it blank.
	DefaultCommitTemplate = "update files - {{timestamp}}"
	timestampLayout       = "2006-01-02 15:04:05"
)

// CommitRecord describes a commit produced by either the local tool or the hosting API.
type CommitRecord struct {
	Message string
	Hash    string
	Branch  string
	Remote  string
	Files   ChangeSet
}

// CommitInput is everything a hosting service needs to publish one commit on top of Head.
type CommitInput struct {
	Message string
	Head    Head
	Blobs   []Blob
}

// CommitMessage returns message, or the template rendered at now when message is blank.
// Supported placeholders: {{timestamp}}, {{date}}, {{time}}.
func CommitMessage(message, template string, now time.Time) string {
	if message != "" {
		return message
	}
	if template == "" {
		template = DefaultCommitTemplate
	}
	return fasttemplate.ExecuteStringStd(template, "{{", "}}", map[string]interface{}{
		"timestamp": now.Format(timestampLayout),
		"date":      now.Format(time.DateOnly),
		"time":      now.Format(time.TimeOnly),
	})
}
