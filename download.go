package freesound

import (
	"context"
	"fmt"
	"regexp"

	coreErrors "github.com/angelospk/freesound-mcp/pkg/core/errors"
	"github.com/angelospk/freesound-mcp/pkg/core/fileops"
	"github.com/sirupsen/logrus"
)

// defaultOriginalType is used when the sound detail carries no usable file type.
const defaultOriginalType = "wav"

var fileTypePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// GetSound fetches the detail record of a single sound.
func (c *Client) GetSound(ctx context.Context, soundID int) (*SoundDetail, error) {
	if soundID <= 0 {
		return nil, coreErrors.ErrInvalidSoundID
	}

	var sound SoundDetail
	if err := c.httpClient.Get(ctx, fmt.Sprintf("/sounds/%d/", soundID), nil, &sound); err != nil {
		return nil, err
	}
	return &sound, nil
}

// DownloadPreview downloads the mp3 preview of a sound to
// {dir}/{soundId}_preview_{quality}.mp3, replacing any existing file.
// When the requested tier is missing the other tier is used; the file name keeps
// the requested quality.
func (c *Client) DownloadPreview(ctx context.Context, params DownloadPreviewParams) (*DownloadResult, error) {
	quality, err := ParseQuality(string(params.Quality))
	if err != nil {
		return nil, err
	}

	sound, err := c.GetSound(ctx, params.SoundID)
	if err != nil {
		return nil, err
	}

	previewURL := selectPreview(sound.Previews, quality)
	if previewURL == "" {
		return nil, coreErrors.ErrNoPreviewAvailable
	}

	logger := c.log.WithFields(logrus.Fields{"sound_id": params.SoundID, "quality": quality})
	logger.WithField("url", previewURL).Debug("Downloading preview")

	data, err := c.httpClient.Fetch(ctx, previewURL, "", params.Progress)
	if err != nil {
		return nil, err
	}

	filePath, err := c.save(params.DownloadDir, fmt.Sprintf("%d_preview_%s.mp3", params.SoundID, quality), data)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", filePath).Info("Preview downloaded")
	return &DownloadResult{FilePath: filePath}, nil
}

// DownloadOriginal downloads the originally uploaded file of a sound to
// {dir}/{soundId}.{type}. It requires an OAuth2 access token; acquiring one is
// up to the caller.
func (c *Client) DownloadOriginal(ctx context.Context, params DownloadOriginalParams) (*DownloadResult, error) {
	if params.AccessToken == "" {
		return nil, coreErrors.ErrAccessTokenRequired
	}

	sound, err := c.GetSound(ctx, params.SoundID)
	if err != nil {
		return nil, err
	}
	if sound.Download == "" {
		return nil, coreErrors.ErrNoDownloadURL
	}

	logger := c.log.WithFields(logrus.Fields{"sound_id": params.SoundID, "type": sound.Type})
	logger.WithField("url", sound.Download).Debug("Downloading original")

	data, err := c.httpClient.Fetch(ctx, sound.Download, params.AccessToken, params.Progress)
	if err != nil {
		return nil, err
	}

	filePath, err := c.save(params.DownloadDir, fmt.Sprintf("%d.%s", params.SoundID, originalFileType(sound.Type)), data)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", filePath).Info("Original downloaded")
	return &DownloadResult{FilePath: filePath}, nil
}

func (c *Client) save(requestedDir, name string, data []byte) (string, error) {
	dir, err := fileops.ResolveDownloadDir(requestedDir, c.config.DownloadDir)
	if err != nil {
		return "", err
	}
	return fileops.WriteFile(dir, name, data)
}

// selectPreview returns the mp3 preview for q, falling back to the other tier.
func selectPreview(p Previews, q Quality) string {
	if u := p.MP3(q); u != "" {
		return u
	}
	if q == QualityHQ {
		return p.MP3(QualityLQ)
	}
	return p.MP3(QualityHQ)
}

// originalFileType keeps upstream type hints that are plain extensions so the
// value can never escape the download directory.
func originalFileType(t string) string {
	if !fileTypePattern.MatchString(t) {
		return defaultOriginalType
	}
	return t
}
