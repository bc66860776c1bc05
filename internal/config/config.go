// Package config loads runtime settings from defaults, an optional JSON file,
// a .env file and ATTENTION_* environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/ironsheep/attention-cta/internal/analysis"
	"github.com/ironsheep/attention-cta/internal/cta"
	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/ocr"
	"github.com/ironsheep/attention-cta/internal/saliency"
	"github.com/ironsheep/attention-cta/internal/video"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the application configuration.
type Config struct {
	Saliency SaliencyConfig `json:"saliency"`
	CTA      CTAConfig      `json:"cta"`
	Video    VideoConfig    `json:"video"`
	Output   OutputConfig   `json:"output"`
	OCR      OCRConfig      `json:"ocr"`
	Server   ServerConfig   `json:"server"`
}

// SaliencyConfig tunes the attention mask and gaze peaks.
type SaliencyConfig struct {
	Percentile float64 `json:"percentile" validate:"gt=0,lte=100"`
	MaxPoints  int     `json:"max_points" validate:"gte=0,lte=100"`
	MinDist    int     `json:"min_dist" validate:"gte=0"`
	MinValue   int     `json:"min_value" validate:"gte=0,lte=255"`
	Sigma      float64 `json:"sigma" validate:"gte=0"`
}

// CTAConfig tunes candidate generation, scoring and deduplication.
type CTAConfig struct {
	Strategy          string  `json:"strategy" validate:"oneof=edges saturation gocv"`
	DisableOCR        bool    `json:"disable_ocr"`
	MinWordConfidence float64 `json:"min_word_confidence" validate:"gte=0,lte=100"`
	KeywordWeight     float64 `json:"keyword_weight" validate:"gte=0"`
	VerbWeight        float64 `json:"verb_weight" validate:"gte=0"`
	AttentionWeight   float64 `json:"attention_weight" validate:"gte=0"`
	HeadlinePenalty   float64 `json:"headline_penalty" validate:"gte=0"`
	AcceptThreshold   float64 `json:"accept_threshold"`
	IoUThreshold      float64 `json:"iou_threshold" validate:"gt=0,lte=1"`
	Limit             int     `json:"limit" validate:"gte=1,lte=50"`
}

// VideoConfig tunes key-frame sampling.
type VideoConfig struct {
	IntervalSeconds float64 `json:"interval_seconds" validate:"gt=0"`
	PixelDelta      int     `json:"pixel_delta" validate:"gte=0,lte=255"`
	ChangeThreshold float64 `json:"change_threshold" validate:"gte=0,lte=100"`
	Workers         int     `json:"workers" validate:"gte=1,lte=64"`
	TrackEvaluated  bool    `json:"track_evaluated"`
}

// OutputConfig controls artifact rendering.
type OutputConfig struct {
	Dir             string `json:"dir"`
	Format          string `json:"format" validate:"oneof=jpg png webp"`
	SpotlightRadius int    `json:"spotlight_radius" validate:"gte=0"`
}

// OCRConfig selects the Tesseract language data.
type OCRConfig struct {
	Language       string `json:"language" validate:"required"`
	TessdataPrefix string `json:"tessdata_prefix"`
}

// ServerConfig holds the HTTP surface and job store settings.
type ServerConfig struct {
	Addr          string `json:"addr" validate:"required"`
	RedisAddr     string `json:"redis_addr"`
	JobTTLSeconds int    `json:"job_ttl_seconds" validate:"gte=1"`
	MaxUploadMB   int    `json:"max_upload_mb" validate:"gte=1"`
}

// Default returns a configuration with default values.
func Default() *Config {
	peaks := saliency.DefaultPeakOptions()
	opts := cta.DefaultOptions()
	sampler := video.DefaultSamplerOptions()
	return &Config{
		Saliency: SaliencyConfig{
			Percentile: saliency.DefaultPercentile,
			MaxPoints:  peaks.MaxPoints,
			MinDist:    peaks.MinDist,
			MinValue:   int(peaks.MinValue),
			Sigma:      peaks.Sigma,
		},
		CTA: CTAConfig{
			Strategy:          detection.StrategyEdges,
			MinWordConfidence: opts.MinWordConfidence,
			KeywordWeight:     opts.KeywordWeight,
			VerbWeight:        opts.VerbWeight,
			AttentionWeight:   opts.AttentionWeight,
			HeadlinePenalty:   opts.HeadlinePenalty,
			AcceptThreshold:   opts.AcceptThreshold,
			IoUThreshold:      opts.IoUThreshold,
			Limit:             opts.Limit,
		},
		Video: VideoConfig{
			IntervalSeconds: sampler.IntervalSeconds,
			PixelDelta:      sampler.PixelDelta,
			ChangeThreshold: sampler.ChangeThreshold,
			Workers:         4,
		},
		Output: OutputConfig{
			Dir:             "",
			Format:          "jpg",
			SpotlightRadius: 60,
		},
		OCR: OCRConfig{
			Language: ocr.DefaultLanguage,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			JobTTLSeconds: 3600,
			MaxUploadMB:   100,
		},
	}
}

// Load reads .env (if present), then the JSON file named by ATTENTION_CONFIG
// (if set), then applies ATTENTION_* overrides and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("ATTENTION_CONFIG"); path != "" {
		fromFile, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a JSON file over the defaults. Fields missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as indented JSON.
func (c *Config) SaveToFile(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []string
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = f
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = b
		}
	}

	float("ATTENTION_PERCENTILE", &c.Saliency.Percentile)
	integer("ATTENTION_MAX_POINTS", &c.Saliency.MaxPoints)
	integer("ATTENTION_MIN_DIST", &c.Saliency.MinDist)

	str("ATTENTION_CTA_STRATEGY", &c.CTA.Strategy)
	boolean("ATTENTION_DISABLE_OCR", &c.CTA.DisableOCR)
	float("ATTENTION_ACCEPT_THRESHOLD", &c.CTA.AcceptThreshold)
	float("ATTENTION_IOU_THRESHOLD", &c.CTA.IoUThreshold)
	integer("ATTENTION_CTA_LIMIT", &c.CTA.Limit)

	float("ATTENTION_VIDEO_INTERVAL", &c.Video.IntervalSeconds)
	integer("ATTENTION_PIXEL_DELTA", &c.Video.PixelDelta)
	float("ATTENTION_CHANGE_THRESHOLD", &c.Video.ChangeThreshold)
	integer("ATTENTION_WORKERS", &c.Video.Workers)

	str("ATTENTION_OUTPUT_DIR", &c.Output.Dir)
	str("ATTENTION_OUTPUT_FORMAT", &c.Output.Format)

	str("ATTENTION_OCR_LANGUAGE", &c.OCR.Language)
	str("TESSDATA_PREFIX", &c.OCR.TessdataPrefix)
	str("ATTENTION_TESSDATA_PREFIX", &c.OCR.TessdataPrefix)

	str("ATTENTION_HTTP_ADDR", &c.Server.Addr)
	str("ATTENTION_REDIS_ADDR", &c.Server.RedisAddr)
	integer("ATTENTION_JOB_TTL_SECONDS", &c.Server.JobTTLSeconds)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

// PeakOptions converts the saliency section.
func (c *Config) PeakOptions() saliency.PeakOptions {
	return saliency.PeakOptions{
		MaxPoints: c.Saliency.MaxPoints,
		MinDist:   c.Saliency.MinDist,
		MinValue:  uint8(c.Saliency.MinValue),
		Sigma:     c.Saliency.Sigma,
	}
}

// CTAOptions applies the CTA section over the tuned defaults.
func (c *Config) CTAOptions() cta.Options {
	o := cta.DefaultOptions()
	o.MinWordConfidence = c.CTA.MinWordConfidence
	o.KeywordWeight = c.CTA.KeywordWeight
	o.VerbWeight = c.CTA.VerbWeight
	o.AttentionWeight = c.CTA.AttentionWeight
	o.HeadlinePenalty = c.CTA.HeadlinePenalty
	o.AcceptThreshold = c.CTA.AcceptThreshold
	o.IoUThreshold = c.CTA.IoUThreshold
	o.Limit = c.CTA.Limit
	return o
}

// SamplerOptions converts the video section.
func (c *Config) SamplerOptions() video.SamplerOptions {
	o := video.DefaultSamplerOptions()
	o.IntervalSeconds = c.Video.IntervalSeconds
	o.PixelDelta = c.Video.PixelDelta
	o.ChangeThreshold = c.Video.ChangeThreshold
	o.TrackEvaluated = c.Video.TrackEvaluated
	return o
}

// AnalysisOptions assembles the pipeline options.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Percentile: c.Saliency.Percentile,
		Peaks:      c.PeakOptions(),
		Sampler:    c.SamplerOptions(),
		Workers:    c.Video.Workers,
	}
}

// JobTTL is how long analysis jobs are kept for AOI queries.
func (c *Config) JobTTL() time.Duration {
	return time.Duration(c.Server.JobTTLSeconds) * time.Second
}
