package services

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG header plus padding; enough for content sniffing
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89"), bytes.Repeat([]byte{0}, 64)...)

func TestMediaSaveAndOpen(t *testing.T) {
	svc, _ := setupServices(t, false)
	ctx := context.Background()
	coach := registerTrainer(t, svc, "a@x.com")

	asset, err := svc.Media.Save(ctx, coach, UploadInput{Filename: "photo.bin", ContentType: "application/octet-stream", Body: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	assert.Equal(t, "image/png", asset.ContentType)
	assert.True(t, strings.HasPrefix(asset.StoragePath, "uploads/"+coach.UserID+"/"))
	assert.True(t, strings.HasSuffix(asset.StoragePath, ".png"))
	assert.Equal(t, int64(len(pngBytes)), asset.SizeBytes)
	assert.Len(t, asset.Sha256, 64)

	found, full, err := svc.Media.Open(ctx, asset.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, asset.ID, found.ID)
	content, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, content)

	_, _, err = svc.Media.Open(ctx, "uploads/../../etc/passwd")
	requireKind(t, err, KindNotFound)
	_, _, err = svc.Media.Open(ctx, "uploads/nope.png")
	requireKind(t, err, KindNotFound)

	other := registerTrainer(t, svc, "b@x.com")
	requireKind(t, svc.Media.Delete(ctx, other, asset.StoragePath), KindForbidden)
	require.NoError(t, svc.Media.Delete(ctx, coach, asset.StoragePath))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
}

func TestMediaRejectsNonImages(t *testing.T) {
	svc, _ := setupServices(t, false)
	ctx := context.Background()
	coach := registerTrainer(t, svc, "a@x.com")

	_, err := svc.Media.Save(ctx, coach, UploadInput{Filename: "doc.pdf", ContentType: "application/pdf", Body: strings.NewReader("%PDF-1.4 fake")})
	requireKind(t, err, KindBadRequest)
	assert.Contains(t, err.Error(), "not allowed")

	_, err = svc.Media.Save(ctx, coach, UploadInput{Filename: "notes.txt", Body: strings.NewReader("just text")})
	requireKind(t, err, KindBadRequest)

	_, err = svc.Media.Save(ctx, coach, UploadInput{Filename: "empty.png", ContentType: "image/png", Body: strings.NewReader("")})
	requireKind(t, err, KindBadRequest)

	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 1<<20)...)
	_, err = svc.Media.Save(ctx, coach, UploadInput{Filename: "big.png", ContentType: "image/png", Body: bytes.NewReader(big)})
	requireKind(t, err, KindBadRequest)
	assert.Contains(t, err.Error(), "too large")
}

func TestMediaTrustsDeclaredImageType(t *testing.T) {
	svc, _ := setupServices(t, false)
	coach := registerTrainer(t, svc, "a@x.com")

	asset, err := svc.Media.Save(context.Background(), coach, UploadInput{Filename: "pic.JPG", ContentType: "image/jpeg; charset=binary", Body: strings.NewReader("not really a jpeg")})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", asset.ContentType)
	assert.True(t, strings.HasSuffix(asset.StoragePath, ".jpg"))
	assert.Equal(t, "pic.JPG", asset.Filename)
}
