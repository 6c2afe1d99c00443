package cmd

import (
	"net/http"
	"time"

	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/providers/anyweb"
	"github.com/brogergvhs/anyweb/internal/ui"
	"github.com/brogergvhs/anyweb/internal/util"

	"github.com/manifoldco/promptui"
)

type session struct {
	cfg      *config.Config
	usedPath string
	log      *ui.Logger
	client   *http.Client
	scraper  *anyweb.Scraper
}

// loadSession loads the active profile merged with opts and builds the HTTP
// client and scraper every network command needs.
func loadSession(opts config.Options) (*session, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = opts.Debug || flagDebug

	cfg, usedPath, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          30 * time.Second,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		usedPath: usedPath,
		log:      logSvc,
		client:   client,
		scraper:  anyweb.NewScraper(client, cfg.ScraperOptions(), logSvc),
	}, nil
}

// confirm asks a yes/no question and treats any prompt error as "no".
func confirm(label string) bool {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := p.Run()
	return err == nil
}
