// package formatter renders playlist exports as JSON, CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// Supported export formats
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// ParseFormat normalizes a user supplied format name. "md" and "text" are accepted aliases.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatText, "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// ExportToJSON converts a PlaylistExport to indented JSON
func ExportToJSON(export *models.PlaylistExport) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts a PlaylistExport to CSV format with columns: ID, Title, ArtistID, Artist
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "ArtistID", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, music := range export.Musics {
		record := []string{music.ID, music.Title, music.ArtistID(), music.ArtistName()}
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

// ExportToMarkdown converts a PlaylistExport to a Markdown document
func ExportToMarkdown(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", displayName(export.Playlist))
	fmt.Fprintf(&buf, "**ID**: `%s`\n", export.Playlist.ID)
	fmt.Fprintf(&buf, "**Musics**: %d\n\n", len(export.Musics))

	buf.WriteString("## Musics\n\n")
	for i, music := range export.Musics {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, line(music))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistExport to plain text format
func ExportToText(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", displayName(export.Playlist))
	fmt.Fprintf(&buf, "Musics: %d\n\n", len(export.Musics))

	for i, music := range export.Musics {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, line(music))
	}

	return buf.Bytes(), nil
}

func displayName(p models.Playlist) string {
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

func line(m models.Music) string {
	if name := m.ArtistName(); name != "" {
		return fmt.Sprintf("%s - %s", name, m.Title)
	}
	return m.Title
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MusicsFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist ID as the base filename & creates {base}_musics.csv and {base}_metadata.json
func WriteCSVExport(export *models.PlaylistExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Playlist.ID
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	musicsFile := baseFilepath + "_musics.csv"
	if err := os.WriteFile(musicsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadata, err := json.MarshalIndent(export.Playlist, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadata, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{MusicsFile: musicsFile, MetadataFile: metadataFile}, nil
}

// WriteMarkdownExport exports a playlist to {dir}/README.md, creating dir if needed.
//
// Directory name defaults to the playlist ID.
func WriteMarkdownExport(export *models.PlaylistExport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = export.Playlist.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to {playlist.ID}_musics.txt as the filename.
func WriteTextExport(export *models.PlaylistExport, path string) (string, error) {
	if path == "" {
		path = export.Playlist.ID + "_musics.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport exports a playlist to a JSON file, defaulting to {playlist.ID}.json.
func WriteJSONExport(export *models.PlaylistExport, path string) (string, error) {
	if path == "" {
		path = export.Playlist.ID + ".json"
	}

	data, err := ExportToJSON(export)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}

// WriteExport writes export into dir using format and returns the created files.
func WriteExport(export *models.PlaylistExport, dir, format string) ([]string, error) {
	base := filepath.Join(dir, export.Playlist.ID)

	switch format {
	case FormatCSV:
		res, err := WriteCSVExport(export, base)
		if err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
		return []string{res.MusicsFile, res.MetadataFile}, nil
	case FormatMarkdown:
		file, err := WriteMarkdownExport(export, base)
		if err != nil {
			return nil, fmt.Errorf("markdown export failed: %w", err)
		}
		return []string{file}, nil
	case FormatText:
		file, err := WriteTextExport(export, base+"_musics.txt")
		if err != nil {
			return nil, fmt.Errorf("text export failed: %w", err)
		}
		return []string{file}, nil
	case FormatJSON:
		file, err := WriteJSONExport(export, base+".json")
		if err != nil {
			return nil, fmt.Errorf("JSON export failed: %w", err)
		}
		return []string{file}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// Manifest summarizes a bulk export.
type Manifest struct {
	ExportedAt      time.Time       `json:"exported_at"`
	Format          string          `json:"format"`
	OutputDirectory string          `json:"output_directory"`
	Total           int             `json:"total"`
	Successful      int             `json:"successful"`
	Failed          int             `json:"failed"`
	Playlists       []ManifestEntry `json:"playlists"`
}

// ManifestEntry records the outcome of one playlist export.
type ManifestEntry struct {
	PlaylistID   string   `json:"playlist_id"`
	PlaylistName string   `json:"playlist_name"`
	Musics       int      `json:"musics"`
	Success      bool     `json:"success"`
	Files        []string `json:"files,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
