package domain

import (
	"regexp"
	"strings"
	"time"
)

// Note is a study note, optionally attached to a subject or topic.
// Body may reference other notes with [[Title]] links; extracted links
// live in NoteLink rows.
type Note struct {
	ID        string
	ProfileID string
	SubjectID string
	TopicID   string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteLink is one extracted [[wiki-style]] reference. TargetNoteID is empty
// while the referenced title has no matching note yet.
type NoteLink struct {
	SourceNoteID string
	TargetTitle  string
	TargetNoteID string
}

var wikiLinkRe = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// ExtractLinkTitles returns the distinct [[Title]] targets referenced by the
// body, in first-appearance order. Empty or whitespace-only targets are
// dropped.
func ExtractLinkTitles(body string) []string {
	var titles []string
	seen := map[string]bool{}
	for _, m := range wikiLinkRe.FindAllStringSubmatch(body, -1) {
		title := strings.TrimSpace(m[1])
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}
	return titles
}

// Profile is a local user profile. All collections are profile-scoped.
type Profile struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
