package ytdlp

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	videoTemplate = "%(id)s_h%(height)s.%(ext)s"
	audioTemplate = "%(id)s_audio.%(ext)s"
)

// Client identity sets presented to the extractor. The fallback set covers
// sources where the primary identity is blocked but an alternate is not.
var (
	primaryClients  = []string{"android", "web"}
	fallbackClients = []string{"android", "ios", "web"}
)

// exactSelector requests best video at exactly this height plus best audio,
// else the best combined stream at this height.
func exactSelector(height int) string {
	return fmt.Sprintf("bv*[height=%d]+ba/b[height=%d]", height, height)
}

// relaxedSelector is the fallback: best video at or below this height plus
// best audio, else best overall.
func relaxedSelector(height int) string {
	return fmt.Sprintf("bv*[height<=%d]+ba/b[height<=%d]/best", height, height)
}

// baseArgs is the normalized option set shared by probe and download runs.
func baseArgs(cookiesFile string, clients []string) []string {
	args := []string{
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"--concurrent-fragments", "4",
		"--retries", "3",
		"--fragment-retries", "3",
		"--geo-bypass",
		"--user-agent", userAgent,
		"--add-headers", "Accept-Language:en-US,en;q=0.9",
		"--add-headers", "Referer:https://www.youtube.com/",
		"--extractor-args", "youtube:player_client=" + strings.Join(clients, ","),
	}
	if cookiesFile != "" {
		args = append(args, "--cookies", cookiesFile)
	}
	return args
}

// probeArgs enumerates formats without downloading.
func probeArgs(cookiesFile string, url string) []string {
	args := baseArgs(cookiesFile, primaryClients)
	args = append(args, "--dump-single-json", url)
	return args
}

// downloadArgs fetches one video variant into dir with the deterministic
// {id}_h{height} filename, merging split streams into mp4.
func downloadArgs(dir, cookiesFile, selector string, clients []string, url string) []string {
	args := baseArgs(cookiesFile, clients)
	args = append(args,
		"--format", selector,
		"--output", filepath.Join(dir, videoTemplate),
		"--restrict-filenames",
		"--continue",
		"--no-overwrites",
		"--merge-output-format", "mp4",
		"--embed-metadata",
		"--print-json",
		url,
	)
	return args
}

// audioArgs fetches best audio and extracts it to codec at quality 192.
func audioArgs(dir, cookiesFile, codec, url string) []string {
	args := baseArgs(cookiesFile, primaryClients)
	args = append(args,
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", codec,
		"--audio-quality", "192K",
		"--output", filepath.Join(dir, audioTemplate),
		"--restrict-filenames",
		"--continue",
		"--no-overwrites",
		"--embed-metadata",
		"--print-json",
		url,
	)
	return args
}
