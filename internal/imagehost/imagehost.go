// Package imagehost uploads handover photos to the external image host.
// Uploads are best-effort: a failure degrades the handover to an empty photo
// reference rather than blocking the transaction.
package imagehost

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lacosdev-code/peminjaman/internal/config"
)

// tokenTTL is the lifetime of a single upload authorization.
const tokenTTL = 30 * time.Minute

// Client uploads images and returns their public URLs.
type Client struct {
	uploadURL  string
	publicKey  string
	privateKey string
	folder     string
	http       *http.Client
	now        func() time.Time
}

// New creates an upload client from configuration.
func New(cfg config.ImageHostConfig) *Client {
	return &Client{
		uploadURL:  cfg.UploadURL,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		folder:     cfg.Folder,
		http:       &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Enabled reports whether upload credentials are configured. When disabled,
// handovers simply proceed without photos.
func (c *Client) Enabled() bool {
	return c.publicKey != "" && c.privateKey != ""
}

// uploadResponse is the host's response to a successful upload.
type uploadResponse struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

// Upload sends a JPEG photo and returns its public URL. The short-lived
// authorization (token, expire, signature) is computed per upload: the
// signature is an HMAC-SHA1 of token+expire under the private key, the
// scheme the host's upload endpoint requires.
func (c *Client) Upload(ctx context.Context, data []byte, fileName string) (string, error) {
	token := uuid.NewString()
	expire := strconv.FormatInt(c.now().Add(tokenTTL).Unix(), 10)
	signature := c.sign(token + expire)

	var body strings.Builder
	form := multipart.NewWriter(&body)
	fields := map[string]string{
		"file":              base64.StdEncoding.EncodeToString(data),
		"fileName":          fileName,
		"publicKey":         c.publicKey,
		"useUniqueFileName": "true",
		"folder":            c.folder,
		"token":             token,
		"expire":            expire,
		"signature":         signature,
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return "", fmt.Errorf("building upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("finalizing upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", uploadError(resp)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload response missing url")
	}
	return result.URL, nil
}

// sign computes the hex HMAC-SHA1 of payload under the private key.
func (c *Client) sign(payload string) string {
	mac := hmac.New(sha1.New, []byte(c.privateKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// uploadError extracts the host's error message from a failed response.
func uploadError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return fmt.Errorf("image host rejected upload: %s", payload.Message)
	}
	return fmt.Errorf("image host returned status %d", resp.StatusCode)
}
