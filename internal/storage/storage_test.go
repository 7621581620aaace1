package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "nominees/abc/doc.pdf", want: "nominees/abc/doc.pdf"},
		{key: "/nominees/abc/doc.pdf", want: "nominees/abc/doc.pdf"},
		{key: "", wantErr: true},
		{key: "/", wantErr: true},
		{key: "../etc/passwd", wantErr: true},
		{key: "nominees/../../etc/passwd", wantErr: true},
		{key: "nominees//doc.pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := CleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileBackend(t *testing.T) {
	root := t.TempDir()
	backend, err := NewFileBackend(root)
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := backend.Put(ctx, "nominees/n1/d1.pdf", Object{Body: strings.NewReader("%PDF-1.7"), Size: 8})
	require.NoError(t, err)
	assert.Equal(t, "nominees/n1/d1.pdf", ref)

	content, err := os.ReadFile(filepath.Join(root, "nominees", "n1", "d1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(content))

	entries, err := os.ReadDir(filepath.Join(root, "nominees", "n1"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, backend.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(root, "nominees", "n1", "d1.pdf"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, backend.Delete(ctx, ref), "deleting a missing object succeeds")
}

func TestFileBackend_CancelledUpload(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = backend.Put(ctx, "nominees/n1/d1.pdf", Object{Body: strings.NewReader("data")})
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3Backend(t *testing.T) {
	client := &fakeS3{}
	backend := NewS3Backend(client, "pension-documents")
	ctx := context.Background()

	ref, err := backend.Put(ctx, "nominees/n1/d1.pdf", Object{
		Body:        strings.NewReader("%PDF"),
		Size:        4,
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "nominees/n1/d1.pdf", ref)
	require.Len(t, client.puts, 1)
	assert.Equal(t, "pension-documents", aws.ToString(client.puts[0].Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(client.puts[0].ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(client.puts[0].ContentLength))

	require.NoError(t, backend.Delete(ctx, ref))
	require.Len(t, client.deletes, 1)
	assert.Equal(t, ref, aws.ToString(client.deletes[0].Key))
}

func TestS3Backend_Errors(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	backend := NewS3Backend(client, "bucket")

	_, err := backend.Put(context.Background(), "k/v", Object{Body: strings.NewReader("x")})
	assert.ErrorContains(t, err, "access denied")

	_, err = backend.Put(context.Background(), "../escape", Object{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Len(t, client.puts, 1, "invalid keys never reach S3")
}
