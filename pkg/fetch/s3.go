package fetch

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/groundworkhq/groundwork/pkg/plan"
)

// S3Downloader is the subset of the s3 transfer manager the fetcher needs.
type S3Downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

func (f *Fetcher) downloadS3(ctx context.Context, artifact plan.Artifact, parsed *url.URL, tmp *os.File) (int64, error) {
	downloader, err := f.s3Downloader(ctx)
	if err != nil {
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}
	bucket := parsed.Host
	key := strings.TrimPrefix(parsed.Path, "/")
	size, err := downloader.Download(ctx, tmp, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return 0, &FetchError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}
	return size, nil
}

// s3Downloader lazily builds the transfer manager so runs without s3
// artifacts never load aws configuration.
func (f *Fetcher) s3Downloader(ctx context.Context) (S3Downloader, error) {
	if f.downloader != nil {
		return f.downloader, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	f.downloader = manager.NewDownloader(client)
	return f.downloader, nil
}
