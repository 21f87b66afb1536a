package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carrental/internal/pkg/config"
	"carrental/internal/pkg/errs"

	"github.com/google/uuid"
)

// CloudinaryStorage uploads driver-license images through Cloudinary's
// signed upload endpoint and returns the stored public id as the opaque
// attachment key.
type CloudinaryStorage struct {
	cfg    config.StorageConfig
	client *http.Client
}

func NewCloudinaryStorage(cfg config.StorageConfig) *CloudinaryStorage {
	return &CloudinaryStorage{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *CloudinaryStorage) Store(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errs.New("empty attachment")
	}
	if s.cfg.CloudName == "" || s.cfg.APIKey == "" || s.cfg.APISecret == "" {
		return "", errs.New("storage credentials are not configured")
	}

	publicID := uuid.New().String()
	if s.cfg.Folder != "" {
		publicID = s.cfg.Folder + "/" + publicID
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}
	payload := base64.StdEncoding.EncodeToString(data)

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(
		fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.cfg.APISecret))))

	form := url.Values{}
	form.Add("file", "data:"+contentType+";base64,"+payload)
	form.Add("api_key", s.cfg.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := "https://api.cloudinary.com/v1_1/" + s.cfg.CloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errs.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client.Do(req)
	if err != nil {
		return "", errs.Wrap(err, "upload request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errs.Wrap(err, "failed to read upload response")
	}
	if res.StatusCode != http.StatusOK {
		return "", errs.New(fmt.Sprintf("upload rejected with status %d", res.StatusCode))
	}

	var uploadRes struct {
		PublicID string `json:"public_id"`
		Error    struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &uploadRes); err != nil {
		return "", errs.Wrap(err, "failed to parse upload response")
	}
	if uploadRes.Error.Message != "" {
		return "", errs.New("upload failed: " + uploadRes.Error.Message)
	}
	if uploadRes.PublicID == "" {
		return "", errs.New("upload response missing public id")
	}
	return uploadRes.PublicID, nil
}
