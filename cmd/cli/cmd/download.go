package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	freesound "github.com/angelospk/freesound-mcp"
	"github.com/angelospk/freesound-mcp/pkg/core/fileops"
	"github.com/angelospk/freesound-mcp/pkg/core/history"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	downloadQuality    string
	downloadDir        string
	downloadOriginal   bool
	downloadToken      string
	downloadNoProgress bool
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <soundId>",
	Short: "Download a sound preview, or the original file, by sound ID",
	Long: `Downloads the mp3 preview of a sound to {dir}/{id}_preview_{quality}.mp3.

With --original the uploaded file is downloaded to {dir}/{id}.{type} instead. This
needs an OAuth2 access token, given with --token, FREESOUND_ACCESS_TOKEN or
stored with "freesound-mcp login --token".

Examples:
  freesound-mcp download 12345
  freesound-mcp download 12345 --quality hq --dir ./sounds
  freesound-mcp download 12345 --original --token <access-token>`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	RootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadQuality, "quality", "q", string(freesound.DefaultQuality), "Preview quality: hq or lq")
	downloadCmd.Flags().StringVarP(&downloadDir, "dir", "d", "", "Download directory (default is download.dir or ~/.freesound-mcp/downloads)")
	downloadCmd.Flags().BoolVar(&downloadOriginal, "original", false, "Download the original file (requires an access token)")
	downloadCmd.Flags().StringVar(&downloadToken, "token", "", "OAuth2 access token for --original")
	downloadCmd.Flags().BoolVar(&downloadNoProgress, "no-progress", false, "Do not show a progress bar")
}

func runDownload(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	soundID, err := strconv.Atoi(args[0])
	if err != nil || soundID <= 0 {
		return fmt.Errorf("invalid sound ID %q: must be a positive integer", args[0])
	}
	quality, err := freesound.ParseQuality(downloadQuality)
	if err != nil {
		return err
	}

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	var progress freesound.ProgressFunc
	if !downloadNoProgress {
		progress = newProgressBar(cmd.ErrOrStderr(), soundID)
	}

	var result *freesound.DownloadResult
	entry := history.Entry{SoundID: soundID, Kind: history.KindPreview, Quality: string(quality)}
	if downloadOriginal {
		entry = history.Entry{SoundID: soundID, Kind: history.KindOriginal}
		token := downloadToken
		if token == "" {
			token = viper.GetString(CfgKeyAccessToken)
		}
		result, err = client.DownloadOriginal(cmd.Context(), freesound.DownloadOriginalParams{
			SoundID:     soundID,
			AccessToken: token,
			DownloadDir: downloadDir,
			Progress:    progress,
		})
	} else {
		result, err = client.DownloadPreview(cmd.Context(), freesound.DownloadPreviewParams{
			SoundID:     soundID,
			Quality:     quality,
			DownloadDir: downloadDir,
			Progress:    progress,
		})
	}
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	entry.FilePath = result.FilePath
	if info, err := fileops.ReadAudioInfo(result.FilePath); err != nil {
		logger.WithError(err).Debug("No readable tags in downloaded file")
	} else {
		entry.Format = info.FileType
		logger.WithFields(logrus.Fields{
			"format": info.FileType,
			"title":  info.Title,
			"artist": info.Artist,
		}).Info("Downloaded file tags")
	}
	if manager, err := openHistory(logger); err != nil {
		logger.WithError(err).Warn("Could not open download history")
	} else if err := manager.Add(entry); err != nil {
		logger.WithError(err).Warn("Could not record download in history")
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.FilePath)
	return nil
}

// newProgressBar renders a byte progress bar on w for each binary fetch.
func newProgressBar(w io.Writer, soundID int) freesound.ProgressFunc {
	if w == os.Stderr {
		w = ansi.NewAnsiStderr()
	}
	return func(contentLength int64) io.Writer {
		return progressbar.NewOptions64(contentLength,
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]sound %d[reset]", soundID)),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		)
	}
}
