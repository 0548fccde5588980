// Package fetch resolves, downloads, verifies and installs external
// artifacts into the target environment. Downloads always land in the
// environment's tmp directory first and only move to their destination
// after verification, so a failed fetch never leaves partial files behind.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/groundworkhq/groundwork/pkg/archive"
	"github.com/groundworkhq/groundwork/pkg/helpers"
	"github.com/groundworkhq/groundwork/pkg/plan"
	"github.com/groundworkhq/groundwork/pkg/target"
)

// Fetcher downloads and installs artifacts.
type Fetcher struct {
	httpClient *retryablehttp.Client
	downloader S3Downloader
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the retryable http client.
func WithHTTPClient(client *retryablehttp.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

// WithS3Downloader overrides the s3 downloader, used by tests.
func WithS3Downloader(downloader S3Downloader) Option {
	return func(f *Fetcher) {
		f.downloader = downloader
	}
}

// New returns a new Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{httpClient: newRetryableHTTPClient()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func newRetryableHTTPClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = logrus.StandardLogger()
	return client
}

// Fetch downloads the artifact, verifies it and installs it into the
// target environment. Artifacts marked as archives are extracted into
// their destination directory and their entry points are linked into the
// environment bin dir; plain artifacts are moved to their destination path.
func (f *Fetcher) Fetch(ctx context.Context, artifact plan.Artifact, env *target.Environment) error {
	tmp, err := os.CreateTemp(env.TmpSubDir(), "artifact-*")
	if err != nil {
		return fmt.Errorf("unable to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := f.download(ctx, artifact, tmp)
	if err != nil {
		return err
	}
	if size == 0 {
		return &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: fmt.Errorf("response is empty")}
	}
	logrus.Debugf("downloaded %s (%s)", artifact.Name, units.HumanSize(float64(size)))

	if err := verifyChecksum(tmp.Name(), artifact); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to close temp file: %w", err)
	}

	if artifact.Archive {
		return f.installArchive(tmp.Name(), artifact, env)
	}
	return installFile(tmp.Name(), artifact)
}

func (f *Fetcher) download(ctx context.Context, artifact plan.Artifact, tmp *os.File) (int64, error) {
	parsed, err := url.Parse(artifact.URL)
	if err != nil {
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}
	switch parsed.Scheme {
	case "http", "https":
		return f.downloadHTTP(ctx, artifact, tmp)
	case "s3":
		return f.downloadS3(ctx, artifact, parsed, tmp)
	case "file":
		return downloadLocal(parsed, tmp)
	default:
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: fmt.Errorf("unsupported scheme %q", parsed.Scheme)}
	}
}

func (f *Fetcher) downloadHTTP(ctx context.Context, artifact plan.Artifact, tmp *os.File) (int64, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, artifact.URL, nil)
	if err != nil {
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}
	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}
	return size, nil
}

func downloadLocal(parsed *url.URL, tmp *os.File) (int64, error) {
	src, err := helpers.Open(parsed.Path)
	if err != nil {
		return 0, &FetchError{Artifact: filepath.Base(parsed.Path), URL: parsed.String(), Err: err}
	}
	defer src.Close()
	size, err := io.Copy(tmp, src)
	if err != nil {
		return 0, &FetchError{Artifact: filepath.Base(parsed.Path), URL: parsed.String(), Err: err}
	}
	return size, nil
}

func verifyChecksum(fpath string, artifact plan.Artifact) error {
	if artifact.SHA256 == "" {
		return nil
	}
	fp, err := os.Open(fpath)
	if err != nil {
		return fmt.Errorf("unable to open downloaded file: %w", err)
	}
	defer fp.Close()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, fp); err != nil {
		return fmt.Errorf("unable to hash downloaded file: %w", err)
	}
	actual := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(actual, artifact.SHA256) {
		return &IntegrityError{Artifact: artifact.Name, Expected: strings.ToLower(artifact.SHA256), Actual: actual}
	}
	return nil
}

func (f *Fetcher) installArchive(tmp string, artifact plan.Artifact, env *target.Environment) error {
	if err := os.MkdirAll(artifact.Destination, 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := archive.Uncompress(tmp, artifact.Destination); err != nil {
		return &ExtractError{Artifact: artifact.Name, Err: err}
	}
	for _, rel := range artifact.BinLinks {
		src := filepath.Join(artifact.Destination, rel)
		if err := os.Chmod(src, 0755); err != nil {
			return fmt.Errorf("unable to chmod entry point %s: %w", rel, err)
		}
		dst := env.PathToBinary(filepath.Base(rel))
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("unable to remove previous entry point: %w", err)
		}
		if err := os.Symlink(src, dst); err != nil {
			return fmt.Errorf("unable to link entry point %s: %w", rel, err)
		}
		logrus.Debugf("linked %s into %s", rel, env.BinSubDir())
	}
	return nil
}

func installFile(tmp string, artifact plan.Artifact) error {
	if err := os.MkdirAll(filepath.Dir(artifact.Destination), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := helpers.MoveFile(tmp, artifact.Destination); err != nil {
		return fmt.Errorf("unable to install artifact: %w", err)
	}
	return nil
}
