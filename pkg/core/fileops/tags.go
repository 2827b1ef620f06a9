package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// AudioInfo holds the tags read from a downloaded audio file.
type AudioInfo struct {
	Format   tag.FileType // e.g. tag.MP3, tag.FLAC, tag.OGG
	FileType string       // Format as a plain string
	Title    string
	Artist   string
	Album    string
	Genre    string
	Year     int
	Comment  string
}

// ReadAudioInfo reads the tags of an MP3, FLAC, Ogg or MP4 file using dhowden/tag.
// Files without a supported tag block (WAV, AIFF, untagged data) return an error.
// Duration and bitrate are not available.
func ReadAudioInfo(filePath string) (*AudioInfo, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags from '%s': %w", filePath, err)
	}
	if metadata == nil {
		return nil, fmt.Errorf("no supported tags found: %s", filepath.Ext(filePath))
	}

	return &AudioInfo{
		Format:   metadata.FileType(),
		FileType: string(metadata.FileType()),
		Title:    metadata.Title(),
		Artist:   metadata.Artist(),
		Album:    metadata.Album(),
		Genre:    metadata.Genre(),
		Year:     metadata.Year(),
		Comment:  metadata.Comment(),
	}, nil
}
