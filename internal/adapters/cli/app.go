package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/devbush/clipsave/internal/adapters/artifacts"
	"github.com/devbush/clipsave/internal/adapters/ffmpeg"
	"github.com/devbush/clipsave/internal/adapters/ytdlp"
	"github.com/devbush/clipsave/internal/application"
	"github.com/devbush/clipsave/internal/config"
	"github.com/devbush/clipsave/internal/limiter"
	"github.com/devbush/clipsave/internal/logging"
	"github.com/devbush/clipsave/internal/ports"
	"github.com/devbush/clipsave/internal/state"
)

// App holds all application dependencies. Everything is constructed here
// once at startup and passed down explicitly; nothing reaches for globals.
type App struct {
	Config     *config.Config
	Log        *slog.Logger
	Selections *state.Store
	Jobs       *limiter.Limiter
	Artifacts  *artifacts.Store
	Tool       ports.ToolManager
	Engine     *ffmpeg.Transcoder

	FetchSvc *application.FetchService
	AudioSvc *application.AudioService
	CacheSvc *application.CacheService
}

// NewApp creates and wires up all dependencies
func NewApp() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	stateTTL, err := cfg.StateTTL()
	if err != nil {
		stateTTL = time.Hour
	}
	probeTTL, err := cfg.ProbeCacheTTL()
	if err != nil {
		probeTTL = 15 * time.Minute
	}

	selections := state.NewStore(stateTTL)
	jobs := limiter.New(cfg.Jobs.MaxConcurrent)
	store := artifacts.NewStore(cfg.Paths.DownloadDir)
	tool := ytdlp.NewClient(cfg.Paths.DownloadDir, cfg.Paths.CookiesFile, log)
	engine := ffmpeg.NewTranscoder(log)

	fetchSvc := application.NewFetchService(tool, tool, store, jobs, selections,
		cfg.Jobs.ProbeCacheLen, probeTTL, log)
	audioSvc := application.NewAudioService(engine, jobs, cfg.Paths.OutputDir, log)
	cacheSvc := application.NewCacheService(store)

	return &App{
		Config:     cfg,
		Log:        log,
		Selections: selections,
		Jobs:       jobs,
		Artifacts:  store,
		Tool:       tool,
		Engine:     engine,
		FetchSvc:   fetchSvc,
		AudioSvc:   audioSvc,
		CacheSvc:   cacheSvc,
	}, nil
}
