package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/storage"
)

//nolint:gochecknoglobals // global for fast reuse
var coverContentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errCoverTooLarge = errors.New("cover image exceeds max size")

type PostCoverUploadInput struct {
	Slug        string
	File        io.Reader
	ContentType string
}

func (s *Usecase) PostCoverUpload(ctx context.Context, in PostCoverUploadInput) error {
	ctx, span := s.startSpan(ctx, "PostCoverUpload")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if in.File == nil {
		return goerror.NewInvalidInput(nil, "cover", "cover file is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := coverContentTypeExt[contentType]
	if !ok {
		return goerror.NewInvalidInput(nil, "cover", "unsupported cover content type")
	}

	post, err := s.getOwnedPost(ctx, in.Slug, clm.UserID)
	if err != nil {
		return err
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.blog.cover_bucket"))
	baseURL := strings.TrimSpace(s.cfg.GetString("modules.blog.cover_base_url"))
	key := fmt.Sprintf("%d/%s%s", post.ID, s.uuid.Generate(), ext)
	maxSize := s.cfg.GetInt64("modules.blog.cover_max_size_bytes")

	reader := &maxBytesReader{
		r:   in.File,
		max: maxSize,
	}
	_, err = s.storage.PutObject(ctx, bucket, key, reader, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
		Metadata:    map[string]string{"post_id": strconv.FormatInt(post.ID, 10)},
	})
	if err != nil {
		if errors.Is(err, errCoverTooLarge) {
			return goerror.NewInvalidInput(errCoverTooLarge)
		}
		slog.ErrorContext(ctx, "failed to upload post cover", "post_id", post.ID, "error", err)
		return goerror.NewServer(err)
	}

	coverURL := baseURL + "/" + key
	if err := s.repoDB.UpdatePostCover(ctx, post.ID, coverURL); err != nil {
		slog.ErrorContext(ctx, "failed to update post cover", "post_id", post.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.invalidatePostListCache(ctx)

	return nil
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errCoverTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errCoverTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errCoverTooLarge
		}
		return 0, err
	}

	remaining := m.max - m.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}
