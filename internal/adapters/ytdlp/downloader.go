// Package ytdlp drives the yt-dlp extraction tool: format probing, variant
// downloads with fallback, and management of the binary itself.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/devbush/clipsave/internal/config"
	"github.com/devbush/clipsave/internal/domain"
	"github.com/devbush/clipsave/internal/ports"
)

// Client implements MediaResolver, Downloader and ToolManager using yt-dlp.
type Client struct {
	binPath     string
	downloadDir string
	cookiesFile string
	log         *slog.Logger

	// runner executes the binary; swapped out in tests.
	runner func(ctx context.Context, binPath string, args []string) ([]byte, error)
}

// NewClient creates a yt-dlp client writing artifacts into downloadDir.
func NewClient(downloadDir, cookiesFile string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		downloadDir: downloadDir,
		cookiesFile: cookiesFile,
		log:         log,
		runner:      runBinary,
	}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func (c *Client) findBinary() string {
	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func (c *Client) GetBinaryPath() string {
	if c.binPath != "" {
		return c.binPath
	}
	c.binPath = c.findBinary()
	return c.binPath
}

func (c *Client) IsAvailable() bool {
	return c.GetBinaryPath() != ""
}

// run executes yt-dlp and returns stdout. On a non-zero exit the returned
// error carries the tool's stderr.
func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	return c.runner(ctx, c.GetBinaryPath(), args)
}

func runBinary(ctx context.Context, binPath string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binPath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("yt-dlp failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}
	return output, nil
}

// downloadInfo is the subset of the post-download JSON the orchestrator
// needs to locate the written file.
type downloadInfo struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	RequestedDownloads []struct {
		Filepath string `json:"filepath"`
		Filename string `json:"_filename"`
	} `json:"requested_downloads"`
}

// Download fetches the exact-height variant. Any primary failure triggers
// exactly one fallback attempt with a relaxed selector and the expanded
// client identity set; a second failure is terminal.
func (c *Client) Download(ctx context.Context, url string, height int) (*ports.DownloadResult, error) {
	binPath := c.GetBinaryPath()
	if binPath == "" {
		return nil, domain.ErrYtDlpNotFound
	}
	if err := os.MkdirAll(c.downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	primary := downloadArgs(c.downloadDir, c.cookiesFile, exactSelector(height), primaryClients, url)
	result, primaryErr := c.runDownload(ctx, primary)
	if primaryErr == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// The fallback applies uniformly, not only to forbidden errors: format
	// mismatches and blocked client identities look the same from here.
	c.log.Warn("primary download failed, retrying relaxed", "url", url, "height", height, "error", primaryErr)

	fallback := downloadArgs(c.downloadDir, c.cookiesFile, relaxedSelector(height), fallbackClients, url)
	result, fallbackErr := c.runDownload(ctx, fallback)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: primary: %v; fallback: %v", domain.ErrDownload, primaryErr, fallbackErr)
	}
	return result, nil
}

func (c *Client) runDownload(ctx context.Context, args []string) (*ports.DownloadResult, error) {
	output, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	var info downloadInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	var path string
	for _, rd := range info.RequestedDownloads {
		if rd.Filepath != "" {
			path = rd.Filepath
		} else if rd.Filename != "" {
			path = rd.Filename
		}
	}
	if path == "" {
		return nil, fmt.Errorf("no file path in yt-dlp output")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found after download: %s", path)
	}

	return &ports.DownloadResult{
		ContentID: info.ID,
		Path:      path,
		Title:     info.Title,
	}, nil
}

// DownloadAudio fetches best-available audio and extracts it to codec.
// Single strategy: audio failures are assumed deterministic.
func (c *Client) DownloadAudio(ctx context.Context, url string, codec string) (*ports.DownloadResult, error) {
	binPath := c.GetBinaryPath()
	if binPath == "" {
		return nil, domain.ErrYtDlpNotFound
	}
	if err := os.MkdirAll(c.downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	output, err := c.run(ctx, audioArgs(c.downloadDir, c.cookiesFile, codec, url))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}

	var info downloadInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	// The audio post-processor rewrites the extension, so the reported
	// path can be stale. Glob for the final artifact.
	path := ""
	if info.ID != "" {
		matches, _ := filepath.Glob(filepath.Join(c.downloadDir, info.ID+"_audio.*"))
		if len(matches) > 0 {
			sort.Strings(matches)
			path = matches[len(matches)-1]
		}
	}
	if path == "" {
		for _, rd := range info.RequestedDownloads {
			if rd.Filepath != "" {
				path = rd.Filepath
			}
		}
	}
	if path == "" {
		return nil, fmt.Errorf("audio file not found after download")
	}

	return &ports.DownloadResult{
		ContentID: info.ID,
		Path:      path,
		Title:     info.Title,
	}, nil
}

func (c *Client) getDownloadURL() string {
	base := "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

	switch runtime.GOOS {
	case "windows":
		return base + "yt-dlp.exe"
	case "darwin":
		return base + "yt-dlp_macos"
	default:
		return base + "yt-dlp"
	}
}

// Install downloads yt-dlp into the bundled bin directory.
func (c *Client) Install(ctx context.Context, progress func(downloaded, total int64)) error {
	binDir := config.BinDir()
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}

	destPath := filepath.Join(binDir, binaryName())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.getDownloadURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download yt-dlp: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	// Track success to clean up partial downloads on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(destPath)
		}
	}()

	total := resp.ContentLength
	var downloaded int64

	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			_, writeErr := out.Write(buf[:n])
			if writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(destPath, 0755); err != nil {
			return err
		}
	}

	success = true
	c.binPath = destPath
	return nil
}

// Update runs yt-dlp's self-updater.
func (c *Client) Update(ctx context.Context) error {
	binPath := c.GetBinaryPath()
	if binPath == "" {
		return domain.ErrYtDlpNotFound
	}

	cmd := exec.CommandContext(ctx, binPath, "-U")
	return cmd.Run()
}

var _ ports.MediaResolver = (*Client)(nil)
var _ ports.Downloader = (*Client)(nil)
var _ ports.ToolManager = (*Client)(nil)
