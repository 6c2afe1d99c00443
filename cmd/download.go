package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/brogergvhs/anyweb/internal/chapters"
	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/downloader"
	"github.com/brogergvhs/anyweb/internal/providers"
	"github.com/brogergvhs/anyweb/internal/ui"
	"github.com/brogergvhs/anyweb/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL     string
	flagGenre   string
	flagChapter string
	flagRange   string
	flagList    string
	flagDepth   int
	flagExclude string

	// runtime
	flagOutput         string
	flagImageWorkers   int
	flagChapterWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagSkipBroken     bool

	// headers/auth
	flagCookie           string
	flagCookieFile       string
	flagUserAgent        string
	flagCloudflareBypass bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download chapters and produce CBZ files. Uses the selected profile, overwritten by CLI flags",
		RunE:  runDownload,
	}

	f := downloadCmd.Flags()

	f.StringVar(&flagURL, "url", "", "manga URL (plain, or wrapped by `anyweb wrap`/`anyweb search --index`)")
	f.StringVar(&flagGenre, "genre", "", `legacy genre value: "index" or a comma-separated list of chapter links`)
	f.StringVar(&flagChapter, "chapter", "", "download a single chapter by title or number (e.g. 5)")
	f.StringVar(&flagRange, "range", "", "download a range of chapter numbers (e.g. 5-12)")
	f.StringVar(&flagList, "list", "", "download specific chapter numbers (e.g. 1,3,5)")
	f.IntVar(&flagDepth, "depth", 0, "index depth for unwrapped index pages")
	f.StringVar(&flagExclude, "exclude", "", "CSS selector of regions ignored while looking for chapter links")

	f.StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	f.IntVar(&flagImageWorkers, "image-workers", 5, "parallel image downloads per chapter")
	f.IntVar(&flagChapterWorkers, "chapter-workers", 2, "parallel chapter downloads")
	f.BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary page folders")
	f.BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded without downloading")
	f.BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed pages instead of failing the whole chapter")

	f.StringVar(&flagCookie, "cookie", "", `cookie string, e.g. "key=value; other=123"`)
	f.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	f.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	f.BoolVar(&flagCloudflareBypass, "cloudflare-bypass", false, "wrap the transport with the Cloudflare bypass")

	rootCmd.AddCommand(downloadCmd)
}

var _ downloader.Progress = (*ui.ProgressHandle)(nil)

func runDownload(cmd *cobra.Command, _ []string) error {
	opts := config.Options{
		Output:           flagOutput,
		KeepFolders:      flagKeepFolders,
		DefaultURL:       flagURL,
		DefaultRange:     flagRange,
		DefaultList:      flagList,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		UserAgent:        flagUserAgent,
		CloudflareBypass: flagCloudflareBypass,
		SkipBroken:       flagSkipBroken,
		IndexDepth:       flagDepth,
		IndexExclude:     flagExclude,
	}
	if cmd.Flags().Changed("image-workers") {
		opts.ImageWorkers = flagImageWorkers
	}
	if cmd.Flags().Changed("chapter-workers") {
		opts.ChapterWorkers = flagChapterWorkers
	}

	s, err := loadSession(opts)
	if err != nil {
		return err
	}
	cfg := s.cfg

	fmt.Printf("Config file: %s\n", s.usedPath)
	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	if cfg.DefaultURL == "" {
		return fmt.Errorf("missing --url and no default_url in config")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	list, err := s.scraper.ChapterList(ctx, providers.Manga{URL: cfg.DefaultURL, Genre: flagGenre})
	if err != nil {
		return err
	}

	all := chapters.FromProvider(list)
	fmt.Printf("Found %d chapters.\n\n", len(all))

	selected := chapters.Filter(all, flagChapter, cfg.DefaultRange, cfg.DefaultList)
	if len(selected) == 0 {
		if flagChapter != "" {
			return fmt.Errorf("chapter %q not found", flagChapter)
		}
		return fmt.Errorf("no chapters selected")
	}

	manga := mangaName(ctx, s)

	if flagDryRun {
		ui.Heading(os.Stdout, fmt.Sprintf("Dry-run: %d chapters selected", len(selected)))
		rows := chapterRows(selected)
		for i, c := range selected {
			rows[i] = append(rows[i], c.OutputCBZ(manga))
		}
		return ui.PrintTable(os.Stdout, []string{"#", "Title", "URL", "File"}, rows)
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	stats := downloadChapters(ctx, s, manga, selected)

	if ctx.Err() != nil {
		s.log.Warnf("Interrupted, cleaning up")
		util.CleanupUnfinishedTempFolders(cfg.Output, s.log)
		util.RemoveIfEmpty(cfg.Output, s.log)
		return ctx.Err()
	}

	if n := stats.Failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d chapters failed", n, len(selected))
	}

	fmt.Println("\nAll done.")
	return nil
}

// mangaName prefixes output files with the page title when one is available.
func mangaName(ctx context.Context, s *session) string {
	d, err := s.scraper.GetDetails(ctx, s.cfg.DefaultURL)
	if err != nil {
		s.log.Debugf("No details for %s: %v", s.cfg.DefaultURL, err)
		return ""
	}

	return d.Title
}

func downloadChapters(ctx context.Context, s *session, manga string, selected []chapters.Chapter) *ui.Stats {
	cfg := s.cfg

	pm := ui.NewProgressManager(os.Stdout)
	stats := &ui.Stats{}
	dl := downloader.New(s.client, cfg.SkipBroken)
	start := time.Now()

	sem := make(chan struct{}, max(1, cfg.ChapterWorkers))
	var wg sync.WaitGroup

	for _, ch := range selected {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := downloadChapter(ctx, s, dl, pm, stats, manga, ch); err != nil {
				stats.AddFailure()
				s.log.WithField("chapter", ch.Label).Errorf("%s: %v", ch.Title, err)
			}
		}()
	}

	wg.Wait()
	pm.Close()

	fmt.Println()
	stats.PrintSummary(os.Stdout, time.Since(start))

	return stats
}

func downloadChapter(
	ctx context.Context,
	s *session,
	dl *downloader.Downloader,
	pm *ui.MPBProgressManager,
	stats *ui.Stats,
	manga string,
	ch chapters.Chapter,
) error {
	cfg := s.cfg

	pages, err := s.scraper.GetPages(ctx, ch.URL)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no images left after filtering")
	}

	handle := pm.Register("Ch." + ch.Label)
	handle.SetTotal(len(pages))

	tmpFolder := ch.FolderPath(cfg.Output, manga)

	files, bytes, err := dl.DownloadPagesConcurrently(ctx, pages, tmpFolder, ch.URL, max(1, cfg.ImageWorkers), handle)
	if err != nil {
		handle.MarkDone()
		util.CleanupFolder(tmpFolder)
		return err
	}

	if err := util.CreateCBZ(files, ch.OutputCBZPath(cfg.Output, manga)); err != nil {
		util.CleanupFolder(tmpFolder)
		return err
	}

	if !cfg.KeepFolders {
		util.CleanupFolder(tmpFolder)
	}

	stats.AddChapter(len(files), bytes)
	return nil
}
