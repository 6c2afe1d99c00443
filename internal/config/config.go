package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/anyweb/internal/providers/anyweb"

	"gopkg.in/yaml.v3"
)

type IndexConfig struct {
	Depth           int    `yaml:"depth"`
	ExcludeSelector string `yaml:"exclude_selector"`
}

type ImagesConfig struct {
	CheckSelector      bool   `yaml:"check_selector"`
	ExcludeSelector    string `yaml:"exclude_selector"`
	CheckKeywords      bool   `yaml:"check_keywords"`
	ExcludeKeywords    string `yaml:"exclude_keywords"`
	CheckURLKeywords   bool   `yaml:"check_url_keywords"`
	ExcludeURLKeywords string `yaml:"exclude_url_keywords"`
	CheckDimensions    bool   `yaml:"check_dimensions"`
	MinWidth           int    `yaml:"min_width"`
	MinHeight          int    `yaml:"min_height"`
	CheckSize          bool   `yaml:"check_size"`
	MinSize            int64  `yaml:"min_size"`
}

type Config struct {
	Output         string `yaml:"output"`
	ImageWorkers   int    `yaml:"image_workers"`
	ChapterWorkers int    `yaml:"chapter_workers"`
	KeepFolders    bool   `yaml:"keep_folders"`
	Debug          bool   `yaml:"debug"`

	DefaultURL   string `yaml:"default_url"`
	DefaultRange string `yaml:"default_range"`
	DefaultList  string `yaml:"default_list"`

	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	SkipBroken bool `yaml:"skip_broken"`

	Index  IndexConfig  `yaml:"index"`
	Images ImagesConfig `yaml:"images"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	ImageWorkers     int
	ChapterWorkers   int
	KeepFolders      bool
	DefaultURL       string
	DefaultRange     string
	DefaultList      string
	Cookie           string
	CookieFile       string
	UserAgent        string
	CloudflareBypass bool
	SkipBroken       bool
	IndexDepth       int
	IndexExclude     string
}

func DefaultConfig() *Config {
	img := anyweb.DefaultImageFilterOptions()

	return &Config{
		Output:           ".",
		ImageWorkers:     5,
		ChapterWorkers:   2,
		KeepFolders:      false,
		Debug:            false,
		DefaultURL:       "",
		DefaultRange:     "",
		DefaultList:      "",
		Cookie:           "",
		CookieFile:       "",
		UserAgent:        "",
		CloudflareBypass: false,
		SkipBroken:       false,
		Index: IndexConfig{
			Depth:           anyweb.DefaultIndexDepth,
			ExcludeSelector: anyweb.DefaultExcludeSelector,
		},
		Images: ImagesConfig{
			CheckSelector:      img.CheckSelector,
			ExcludeSelector:    img.ExcludeSelector,
			CheckKeywords:      img.CheckKeywords,
			ExcludeKeywords:    img.ExcludeKeywords,
			CheckURLKeywords:   img.CheckURLKeywords,
			ExcludeURLKeywords: img.ExcludeURLKeywords,
			CheckDimensions:    img.CheckDimensions,
			MinWidth:           img.MinWidth,
			MinHeight:          img.MinHeight,
			CheckSize:          img.CheckSize,
			MinSize:            img.MinSize,
		},
	}
}

// ScraperOptions maps the profile onto the options of the anyweb scraper.
func (c *Config) ScraperOptions() anyweb.Options {
	return anyweb.Options{
		IndexDepth:           c.Index.Depth,
		IndexExcludeSelector: c.Index.ExcludeSelector,
		Images: anyweb.ImageFilterOptions{
			CheckSelector:      c.Images.CheckSelector,
			ExcludeSelector:    c.Images.ExcludeSelector,
			CheckKeywords:      c.Images.CheckKeywords,
			ExcludeKeywords:    c.Images.ExcludeKeywords,
			CheckURLKeywords:   c.Images.CheckURLKeywords,
			ExcludeURLKeywords: c.Images.ExcludeURLKeywords,
			CheckDimensions:    c.Images.CheckDimensions,
			MinWidth:           c.Images.MinWidth,
			MinHeight:          c.Images.MinHeight,
			CheckSize:          c.Images.CheckSize,
			MinSize:            c.Images.MinSize,
		},
	}
}

// Validate reports configuration errors that would otherwise only show up
// in the middle of a scrape.
func (c *Config) Validate() error {
	var errs []error

	if c.Index.Depth < 1 {
		errs = append(errs, fmt.Errorf("index.depth: %w", anyweb.ErrInvalidIndexDepth))
	}
	if err := anyweb.ValidateSelector(c.Index.ExcludeSelector); err != nil {
		errs = append(errs, fmt.Errorf("index.exclude_selector: %w", err))
	}
	if c.Images.CheckSelector {
		if err := anyweb.ValidateSelector(c.Images.ExcludeSelector); err != nil {
			errs = append(errs, fmt.Errorf("images.exclude_selector: %w", err))
		}
	}

	return errors.Join(errs...)
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadFile decodes a profile over the defaults so keys missing from the
// file keep their default values.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `anyweb config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := LoadFile(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ImageWorkers != 0 {
		c.ImageWorkers = o.ImageWorkers
	}
	if o.ChapterWorkers != 0 {
		c.ChapterWorkers = o.ChapterWorkers
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.Debug {
		c.Debug = true
	}
	if o.DefaultURL != "" {
		c.DefaultURL = o.DefaultURL
	}
	if o.DefaultRange != "" {
		c.DefaultRange = o.DefaultRange
	}
	if o.DefaultList != "" {
		c.DefaultList = o.DefaultList
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
	if o.IndexDepth != 0 {
		c.Index.Depth = o.IndexDepth
	}
	if o.IndexExclude != "" {
		c.Index.ExcludeSelector = o.IndexExclude
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.ImageWorkers == 0 {
		c.ImageWorkers = 5
	}
	if c.ChapterWorkers == 0 {
		c.ChapterWorkers = 2
	}
	if c.Index.Depth == 0 {
		c.Index.Depth = anyweb.DefaultIndexDepth
	}
}

func (c *Config) Print() {
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -image_workers: %d\n", c.ImageWorkers)
	fmt.Printf(" -chapter_workers: %d\n", c.ChapterWorkers)
	if c.KeepFolders {
		fmt.Printf(" -keep_folders: %t\n", c.KeepFolders)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.DefaultURL != "" {
		fmt.Printf(" -url: %s\n", c.DefaultURL)
	}
	if c.DefaultRange != "" {
		fmt.Printf(" -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		fmt.Printf(" -list: %s\n", c.DefaultList)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.SkipBroken {
		fmt.Printf(" -skip_broken: %t\n", c.SkipBroken)
	}

	fmt.Printf(" -index.depth: %d\n", c.Index.Depth)
	fmt.Printf(" -index.exclude_selector: %s\n", c.Index.ExcludeSelector)

	checks := []string{}
	if c.Images.CheckSelector {
		checks = append(checks, "selector")
	}
	if c.Images.CheckKeywords {
		checks = append(checks, "keywords")
	}
	if c.Images.CheckURLKeywords {
		checks = append(checks, "url_keywords")
	}
	if c.Images.CheckDimensions {
		checks = append(checks, fmt.Sprintf("dimensions(%dx%d)", c.Images.MinWidth, c.Images.MinHeight))
	}
	if c.Images.CheckSize {
		checks = append(checks, fmt.Sprintf("size(%d)", c.Images.MinSize))
	}
	fmt.Printf(" -images.checks: %s\n", strings.Join(checks, ", "))
}
