package service_test

import (
	"context"
	"course-studio/constant"
	"course-studio/service"
	"errors"
	"github.com/minio/minio-go/v7"
	"io"
	"strings"
	"testing"
)

type fakeStorage struct {
	err     error
	objects map[string]string
}

func (s *fakeStorage) PutObject(_ context.Context, bucket, objectName string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if s.err != nil {
		return minio.UploadInfo{}, s.err
	}
	data, _ := io.ReadAll(reader)
	s.objects[bucket+"/"+objectName] = opts.ContentType + ":" + string(data)
	return minio.UploadInfo{Bucket: bucket, Key: objectName}, nil
}

func TestUpload(t *testing.T) {
	storage := &fakeStorage{objects: map[string]string{}}
	svc := service.NewUploadService(storage, "course-assets", "http://localhost:9000/")

	tests := []struct {
		name        string
		contentType string
		want        constant.ResourceType
		prefix      string
	}{
		{name: "lesson.MP4", contentType: "video/mp4", want: constant.ResourceTypeVideo, prefix: "http://localhost:9000/course-assets/videos/"},
		{name: "cover.png", contentType: "image/png", want: constant.ResourceTypeImage, prefix: "http://localhost:9000/course-assets/images/"},
		{name: "notes.pdf", contentType: "application/pdf", want: constant.ResourceTypeFile, prefix: "http://localhost:9000/course-assets/files/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Upload(context.Background(), service.UploadFile{
				Name:        tt.name,
				ContentType: tt.contentType,
				Size:        4,
				Reader:      strings.NewReader("data"),
			})
			if err != nil {
				t.Fatalf("upload: %v", err)
			}
			if resp.ResourceType != tt.want || resp.Name != tt.name {
				t.Fatalf("resp = %+v", resp)
			}
			if !strings.HasPrefix(resp.Url, tt.prefix) {
				t.Fatalf("url = %q, want prefix %q", resp.Url, tt.prefix)
			}
		})
	}
	if len(storage.objects) != 3 {
		t.Fatalf("stored %d objects", len(storage.objects))
	}
}

func TestUploadErrors(t *testing.T) {
	storage := &fakeStorage{err: errors.New("bucket gone"), objects: map[string]string{}}
	svc := service.NewUploadService(storage, "course-assets", "http://localhost:9000")

	_, err := svc.Upload(context.Background(), service.UploadFile{Name: "a.png", ContentType: "image/png", Size: 1, Reader: strings.NewReader("a")})
	assertIs(t, err, service.ErrRemoteService)

	_, err = svc.Upload(context.Background(), service.UploadFile{Name: "empty.png"})
	assertValidation(t, err)
}
