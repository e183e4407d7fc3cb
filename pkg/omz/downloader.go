package omz

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/wait"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
)

// precisions the model zoo publishes, e.g. FP16, FP32, FP16-INT8
var precisionRegexp = regexp.MustCompile(`^FP(16|32)(-INT[18])?$`)

func IsPrecision(s string) bool {
	return precisionRegexp.MatchString(s)
}

func ValidatePrecisions(precisions []string) error {
	for _, p := range precisions {
		if !precisionRegexp.MatchString(p) {
			return apierr.NewPrecisionInvalidError(p)
		}
	}
	return nil
}

type DownloadOptions struct {
	Name       string
	OutputDir  string
	CacheDir   string
	Precisions []string
	Retries    int
	RetryDelay time.Duration
}

func (o DownloadOptions) Args() []string {
	args := []string{"--name", o.Name, "--output_dir", o.OutputDir}
	if o.CacheDir != "" {
		args = append(args, "--cache_dir", o.CacheDir)
	}
	if len(o.Precisions) > 0 {
		args = append(args, "--precisions", strings.Join(o.Precisions, ","))
	}
	return args
}

// Download runs omz_downloader. Failed runs are retried: the downloader
// resumes from its cache, so a rerun only refetches what is missing.
func Download(ctx context.Context, tool Tool, opts DownloadOptions) error {
	if opts.Name == "" {
		return apierr.NewParameterInvalidError("model name is required")
	}
	if err := ValidatePrecisions(opts.Precisions); err != nil {
		return err
	}

	delay := opts.RetryDelay
	if delay == 0 {
		delay = 3 * time.Second
	}

	log := logr.FromContextOrDiscard(ctx)
	attempt, lasterr := 0, error(nil)
	err := wait.PollImmediateUntilWithContext(ctx, delay, func(ctx context.Context) (bool, error) {
		attempt++
		lasterr = tool.Run(ctx, opts.Args()...)
		if lasterr == nil {
			return true, nil
		}
		if apierr.IsErrCode(lasterr, apierr.ErrCodeToolNotFound) || attempt > opts.Retries {
			return false, lasterr
		}
		log.Info("download failed, retrying", "model", opts.Name, "attempt", attempt, "error", lasterr.Error())
		return false, nil
	})
	if err != nil && lasterr != nil {
		return lasterr
	}
	return err
}
