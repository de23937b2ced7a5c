package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/devbush/clipsave/internal/domain"
)

// stubClient returns a client whose binary invocations are handled by run
// and recorded into the returned slice.
func stubClient(t *testing.T, run func(call int, args []string) ([]byte, error)) (*Client, *[][]string) {
	t.Helper()

	c := NewClient(t.TempDir(), "", nil)
	c.binPath = "yt-dlp" // skip discovery

	calls := &[][]string{}
	c.runner = func(ctx context.Context, binPath string, args []string) ([]byte, error) {
		*calls = append(*calls, args)
		return run(len(*calls), args)
	}
	return c, calls
}

func downloadPayload(t *testing.T, dir, id string) []byte {
	t.Helper()

	path := filepath.Join(dir, id+"_h720.mp4")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return []byte(fmt.Sprintf(`{"id":%q,"title":"T","requested_downloads":[{"filepath":%q}]}`, id, path))
}

func TestDownloadPrimarySuccess(t *testing.T) {
	var c *Client
	var calls *[][]string
	c, calls = stubClient(t, func(call int, args []string) ([]byte, error) {
		return downloadPayload(t, c.downloadDir, "abc"), nil
	})

	res, err := c.Download(context.Background(), "https://youtu.be/abc", 720)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("invocations = %d, want 1 when primary succeeds", len(*calls))
	}
	if res.ContentID != "abc" {
		t.Errorf("ContentID = %s, want abc", res.ContentID)
	}
}

func TestDownloadFallbackOnce(t *testing.T) {
	c, calls := stubClient(t, func(call int, args []string) ([]byte, error) {
		return nil, fmt.Errorf("yt-dlp failed: HTTP 403 (attempt %d)", call)
	})

	_, err := c.Download(context.Background(), "https://youtu.be/abc", 720)
	if !errors.Is(err, domain.ErrDownload) {
		t.Fatalf("Download() error = %v, want ErrDownload", err)
	}
	if len(*calls) != 2 {
		t.Fatalf("invocations = %d, want exactly 2 (primary + one fallback)", len(*calls))
	}

	primary := strings.Join((*calls)[0], " ")
	if !strings.Contains(primary, exactSelector(720)) {
		t.Errorf("primary args missing exact selector: %s", primary)
	}
	if !strings.Contains(primary, "youtube:player_client=android,web") {
		t.Errorf("primary args missing primary clients: %s", primary)
	}

	fallback := strings.Join((*calls)[1], " ")
	if !strings.Contains(fallback, relaxedSelector(720)) {
		t.Errorf("fallback args missing relaxed selector: %s", fallback)
	}
	if !strings.Contains(fallback, "youtube:player_client=android,ios,web") {
		t.Errorf("fallback args missing expanded clients: %s", fallback)
	}

	// Terminal error reports both causes.
	for _, want := range []string{"attempt 1", "attempt 2"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing cause %q", err, want)
		}
	}
}

func TestDownloadFallbackRecovers(t *testing.T) {
	var c *Client
	var calls *[][]string
	c, calls = stubClient(t, func(call int, args []string) ([]byte, error) {
		if call == 1 {
			return nil, errors.New("yt-dlp failed: requested format not available")
		}
		return downloadPayload(t, c.downloadDir, "abc"), nil
	})

	res, err := c.Download(context.Background(), "https://youtu.be/abc", 720)
	if err != nil {
		t.Fatalf("Download() error = %v, want fallback success", err)
	}
	if len(*calls) != 2 {
		t.Fatalf("invocations = %d, want 2", len(*calls))
	}
	if res.Path == "" {
		t.Error("Path empty after fallback success")
	}
}

func TestDownloadCancelledSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	c, calls := stubClient(t, func(call int, args []string) ([]byte, error) {
		cancel()
		return nil, errors.New("yt-dlp failed: killed")
	})

	_, err := c.Download(ctx, "https://youtu.be/abc", 720)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Download() error = %v, want context.Canceled", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("invocations = %d, want 1 after cancellation", len(*calls))
	}
}

func TestYtDlpBinaryName(t *testing.T) {
	name := binaryName()

	if runtime.GOOS == "windows" {
		if name != "yt-dlp.exe" {
			t.Errorf("binaryName() = %s, want yt-dlp.exe on Windows", name)
		}
	} else {
		if name != "yt-dlp" {
			t.Errorf("binaryName() = %s, want yt-dlp", name)
		}
	}
}

func TestSelectors(t *testing.T) {
	if got := exactSelector(720); got != "bv*[height=720]+ba/b[height=720]" {
		t.Errorf("exactSelector(720) = %s", got)
	}
	if got := relaxedSelector(720); got != "bv*[height<=720]+ba/b[height<=720]/best" {
		t.Errorf("relaxedSelector(720) = %s", got)
	}
}

func TestBaseArgs(t *testing.T) {
	args := baseArgs("", primaryClients)

	for _, want := range []string{"--quiet", "--no-playlist", "--geo-bypass"} {
		if !slices.Contains(args, want) {
			t.Errorf("baseArgs() missing %s", want)
		}
	}
	if !slices.Contains(args, "youtube:player_client=android,web") {
		t.Error("baseArgs() missing primary player clients")
	}
	if slices.Contains(args, "--cookies") {
		t.Error("baseArgs() added --cookies without a cookie file")
	}
}

func TestBaseArgsCookies(t *testing.T) {
	args := baseArgs("/tmp/cookies.txt", primaryClients)

	i := slices.Index(args, "--cookies")
	if i < 0 || i+1 >= len(args) || args[i+1] != "/tmp/cookies.txt" {
		t.Errorf("baseArgs() cookies flag wrong: %v", args)
	}
}

func TestDownloadArgs(t *testing.T) {
	args := downloadArgs("/dl", "", exactSelector(480), fallbackClients, "https://youtu.be/x")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"--format bv*[height=480]+ba/b[height=480]",
		"--restrict-filenames",
		"--merge-output-format mp4",
		"--print-json",
		"youtube:player_client=android,ios,web",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("downloadArgs() missing %q", want)
		}
	}
	if !strings.Contains(joined, "%(id)s_h%(height)s.%(ext)s") {
		t.Error("downloadArgs() missing deterministic output template")
	}
	if args[len(args)-1] != "https://youtu.be/x" {
		t.Error("downloadArgs() URL not last")
	}
}

func TestAudioArgs(t *testing.T) {
	args := audioArgs("/dl", "", "mp3", "https://youtu.be/x")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"--format bestaudio/best",
		"--extract-audio",
		"--audio-format mp3",
		"--audio-quality 192K",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("audioArgs() missing %q", want)
		}
	}
	if !strings.Contains(joined, "%(id)s_audio.%(ext)s") {
		t.Error("audioArgs() missing audio output template")
	}
}
