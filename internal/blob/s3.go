package blob

import (
	"bitwise74/filestore-api/aws"
	"context"
	"errors"
	"fmt"
	"io"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Objects bigger than this are sent as multipart uploads
const multipartThreshold = 12 << 20

type S3 struct {
	client   *s3.Client
	bucket   *string
	uploader *manager.Uploader
}

func NewS3(c *aws.S3Client) *S3 {
	return &S3{
		client: c.C,
		bucket: c.Bucket,
		uploader: manager.NewUploader(c.C, func(u *manager.Uploader) {
			u.PartSize = multipartThreshold
		}),
	}
}

func (s *S3) Put(ctx context.Context, id, name string, r io.Reader, size int64) (string, error) {
	key := Key(id, name)

	var err error
	if usePutObject(r, size) {
		in := &s3.PutObjectInput{
			Bucket:        s.bucket,
			Key:           awssdk.String(key),
			Body:          r,
			ContentLength: awssdk.Int64(size),
		}
		_, err = s.client.PutObject(ctx, in)
	} else {
		_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: s.bucket,
			Key:    awssdk.String(key),
			Body:   r,
		})
	}

	if err != nil {
		return "", fmt.Errorf("blob %s: %w", key, err)
	}

	return key, nil
}

func (s *S3) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.bucket,
		Key:    awssdk.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("blob %s: %w", key, ErrBlobNotFound)
		}

		return nil, fmt.Errorf("blob %s: %w", key, err)
	}

	return out.Body, nil
}

// Delete relies on S3 treating deletes of missing keys as success
func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.bucket,
		Key:    awssdk.String(key),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("blob %s: %w", key, err)
	}

	return nil
}

func (s *S3) List(ctx context.Context) ([]Object, error) {
	var objects []Object

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: s.bucket,
	})

	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bucket, %w", err)
		}

		for _, o := range page.Contents {
			obj := Object{
				Key:  awssdk.ToString(o.Key),
				Size: awssdk.ToInt64(o.Size),
			}
			if o.LastModified != nil {
				obj.ModTime = *o.LastModified
			}

			objects = append(objects, obj)
		}
	}

	return objects, nil
}

// usePutObject reports whether r can go out as a single PutObject call.
// The SDK needs a seekable body to sign and retry it, anything else is
// streamed through the uploader.
func usePutObject(r io.Reader, size int64) bool {
	_, ok := r.(io.ReadSeeker)
	return ok && size >= 0 && size < multipartThreshold
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey"
	}

	return false
}
