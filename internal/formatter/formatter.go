// package formatter renders catalog data for terminal output and file
// exports (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
)

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func yearString(y *int) string {
	if y == nil {
		return "-"
	}
	return strconv.Itoa(*y)
}

func durationString(d *int) string {
	if d == nil {
		return "-"
	}
	return shared.FormatDuration(*d)
}

// MusicTable renders a catalog listing as an aligned text table.
func MusicTable(entries []models.Music) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tARTIST\tALBUM\tYEAR\tDURATION")
	for _, m := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.Title, m.Artist, orDash(m.Album), yearString(m.Year), durationString(m.Duration))
	}

	w.Flush()
	return buf.String()
}

// MusicDetail renders one catalog entry with its fields stacked.
func MusicDetail(m *models.Music) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Title: %s\n", m.Title)
	fmt.Fprintf(&buf, "Artist: %s\n", m.Artist)
	if m.Album != nil {
		fmt.Fprintf(&buf, "Album: %s\n", *m.Album)
	}
	if m.Genre != nil {
		fmt.Fprintf(&buf, "Genre: %s\n", *m.Genre)
	}
	if m.Year != nil {
		fmt.Fprintf(&buf, "Year: %d\n", *m.Year)
	}
	if m.Duration != nil {
		fmt.Fprintf(&buf, "Duration: %s\n", shared.FormatDuration(*m.Duration))
	}

	return buf.String()
}

// CollectionTable renders a personal collection as an aligned text table.
func CollectionTable(entries []models.CollectionEntry) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tARTIST\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Music.Title, e.Music.Artist, e.Status)
	}

	w.Flush()
	return buf.String()
}

// UsersTable renders the user directory as an aligned text table.
func UsersTable(users []models.User) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}

	w.Flush()
	return buf.String()
}

// CommentList renders comments newest-first as numbered lines.
func CommentList(comments []models.Comment) string {
	var buf bytes.Buffer

	for i, c := range comments {
		rating := ""
		if c.Rating != nil {
			rating = fmt.Sprintf(" [%d/5]", *c.Rating)
		}
		fmt.Fprintf(&buf, "%d. user %d%s: %s\n", i+1, c.UserID, rating, c.Content)
	}

	return buf.String()
}

// ExportToCSV converts a catalog listing to CSV with columns: ID, Title, Artist, Album, Genre, Year, Duration
func ExportToCSV(entries []models.Music) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Genre", "Year", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range entries {
		record := []string{
			strconv.FormatInt(m.ID, 10),
			m.Title,
			m.Artist,
			stringOrEmpty(m.Album),
			stringOrEmpty(m.Genre),
			intOrEmpty(m.Year),
			intOrEmpty(m.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a catalog listing to Markdown.
func ExportToMarkdown(title string, entries []models.Music) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n\n", len(entries)))

	buf.WriteString("## Catalog\n\n")
	for i, m := range entries {
		albumPart := ""
		if m.Album != nil && *m.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", *m.Album)
		}
		durationPart := ""
		if m.Duration != nil {
			durationPart = fmt.Sprintf(" [%s]", shared.FormatDuration(*m.Duration))
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, m.Artist, m.Title, albumPart, durationPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a catalog listing to plain text.
func ExportToText(title string, entries []models.Music) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Catalog: %s\n", title))
	buf.WriteString(fmt.Sprintf("Entries: %d\n\n", len(entries)))

	for i, m := range entries {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, m.Artist, m.Title))
	}

	return buf.Bytes(), nil
}

// WriteCatalogExport writes a catalog listing to path in the given format
// (json, csv, markdown, txt; defaults to json) and returns the file written.
func WriteCatalogExport(entries []models.Music, format, path string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "csv":
		if path == "" {
			path = "catalog.csv"
		}
		data, err = ExportToCSV(entries)
	case "markdown":
		if path == "" {
			path = "catalog.md"
		}
		data, err = ExportToMarkdown("Music Catalog", entries)
	case "txt":
		if path == "" {
			path = "catalog.txt"
		}
		data, err = ExportToText("Music Catalog", entries)
	case "json", "":
		if path == "" {
			path = "catalog.json"
		}
		data, err = shared.MarshalJSON(entries, true)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate export: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
