package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
)

var (
	_ list.Item = musicItem{}
	_ list.Item = collectionItem{}
	_ list.Item = userItem{}
)

// musicItem wraps [models.Music] to implement [list.Item].
type musicItem struct {
	music models.Music
}

func (i musicItem) FilterValue() string { return i.music.Title }
func (i musicItem) Title() string       { return i.music.Title }
func (i musicItem) Description() string {
	desc := i.music.Artist
	if i.music.Album != nil && *i.music.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, *i.music.Album)
	}
	if i.music.Duration != nil {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(*i.music.Duration))
	}
	return desc
}

// collectionItem wraps [models.CollectionEntry] to implement [list.Item].
type collectionItem struct {
	entry models.CollectionEntry
}

func (i collectionItem) FilterValue() string { return i.entry.Music.Title }
func (i collectionItem) Title() string       { return i.entry.Music.Title }
func (i collectionItem) Description() string {
	desc := i.entry.Music.Artist
	if i.entry.Status != models.StatusNone {
		desc = fmt.Sprintf("%s • %s", desc, i.entry.Status)
	}
	return desc
}

// userItem wraps [models.User] to implement [list.Item].
type userItem struct {
	user models.User
}

func (i userItem) FilterValue() string { return i.user.Username }
func (i userItem) Title() string       { return i.user.Username }
func (i userItem) Description() string {
	return fmt.Sprintf("%s • %s", i.user.Email, i.user.Role)
}
