package mirror

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"k8s.io/utils/pointer"
	"k8s.io/utils/ptr"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
)

// Options configures the S3 bucket teams share packed IR archives through.
type Options struct {
	URL       string `json:"url,omitempty"`
	Region    string `json:"region,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	AccessKey string `json:"accessKey,omitempty"`
	SecretKey string `json:"secretKey,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
}

func NewDefaultOptions() *Options {
	return &Options{
		Bucket:    "ovprep",
		Prefix:    "models",
		PathStyle: true,
	}
}

type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Mirror struct {
	bucket string
	prefix string
	client *s3.Client
}

func New(ctx context.Context, options *Options) (*Mirror, error) {
	if options.URL == "" {
		return nil, apierr.NewConfigInvalidError("mirror url is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, ""),
		),
		config.WithRegion(options.Region),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{URL: options.URL}, nil
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}
	s3cli := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = options.PathStyle
	})
	return &Mirror{
		bucket: options.Bucket,
		prefix: options.Prefix,
		client: s3cli,
	}, nil
}

// Put uploads an archive. Content is streamed through the manager uploader so
// multi-gigabyte IR packs do not buffer in memory.
func (m *Mirror) Put(ctx context.Context, key string, content io.Reader, size int64, contentType string) error {
	uploadobj := &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           m.prefixedKey(key),
		Body:          content,
		ContentLength: size,
		ContentType:   aws.String(contentType),
	}
	if _, err := manager.NewUploader(m.client).Upload(ctx, uploadobj); err != nil {
		return apierr.NewInternalError(err)
	}
	return nil
}

func (m *Mirror) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	getobjout, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    m.prefixedKey(key),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, 0, apierr.NewModelUnknownError(key)
		}
		return nil, 0, err
	}
	return getobjout.Body, getobjout.ContentLength, nil
}

func (m *Mirror) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    m.prefixedKey(key),
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Mirror) List(ctx context.Context, keyprefix string) ([]Object, error) {
	prefix := pointer.StringDeref(m.prefixedKey(keyprefix), "")
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	listinput := &s3.ListObjectsInput{
		Bucket: aws.String(m.bucket),
		Prefix: aws.String(prefix),
	}

	var result []Object
	listobjout, err := m.client.ListObjects(ctx, listinput)
	if err != nil {
		return nil, err
	}
	for {
		for _, obj := range listobjout.Contents {
			result = append(result, Object{
				Key:          strings.TrimPrefix(pointer.StringDeref(obj.Key, ""), prefix),
				Size:         obj.Size,
				LastModified: ptr.Deref(obj.LastModified, time.Time{}),
			})
		}
		if !listobjout.IsTruncated {
			break
		}
		listinput.Marker = listobjout.NextMarker
		listobjout, err = m.client.ListObjects(ctx, listinput)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (m *Mirror) Remove(ctx context.Context, key string) error {
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    m.prefixedKey(key),
	})
	return err
}

func IsNotFound(err error) bool {
	var apie *smithyhttp.ResponseError
	if errors.As(err, &apie) {
		return apie.HTTPStatusCode() == 404
	}
	return false
}

func (m *Mirror) prefixedKey(key string) *string {
	return aws.String(path.Join(m.prefix, key))
}

// ArchiveKey is the bucket layout for a packed model:
// <subdirectory>/<precision>/<name>.tar.gz
func ArchiveKey(subdirectory string, precision string, name string) string {
	return path.Join(subdirectory, precision, name+".tar.gz")
}
