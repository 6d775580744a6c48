package utils

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

var contentTypes = map[string]string{
	".csv":  "text/csv",
	".json": "application/json",
	".png":  "image/png",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ContentType guesses the MIME type of an artifact from its extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Publisher uploads run artifacts to a Supabase storage bucket.
type Publisher struct {
	client *storage.Client
	bucket string
}

// NewPublisher talks to the storage API of the Supabase project at url.
func NewPublisher(url, key, bucket string) *Publisher {
	return &Publisher{
		client: storage.NewClient(strings.TrimRight(url, "/")+"/storage/v1", key, nil),
		bucket: bucket,
	}
}

// Publish uploads localPath under folder and returns its public URL.
// Existing objects are overwritten.
func (p *Publisher) Publish(ctx context.Context, folder, localPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectPath := path.Join(folder, filepath.Base(localPath))
	contentType := ContentType(localPath)
	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}
	if _, err := p.client.UploadFile(p.bucket, objectPath, f, options); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return p.client.GetPublicUrl(p.bucket, objectPath).SignedURL, nil
}
