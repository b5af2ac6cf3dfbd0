package imagehost

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(config.ImageHostConfig{
		UploadURL:  server.URL,
		PublicKey:  "public",
		PrivateKey: "private",
		Folder:     "/peminjaman-teknisi",
	})
	client.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }
	return client
}

func TestUpload(t *testing.T) {
	photo := []byte{0xff, 0xd8, 0xff, 0xe0, 1, 2, 3}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing upload form: %v", err)
		}
		form := r.MultipartForm.Value

		if got := form["file"]; len(got) != 1 || got[0] != base64.StdEncoding.EncodeToString(photo) {
			t.Error("expected base64-encoded photo in file field")
		}
		if got := form["fileName"]; len(got) != 1 || got[0] != "handover_7.jpg" {
			t.Errorf("unexpected fileName: %v", got)
		}
		if got := form["folder"]; len(got) != 1 || got[0] != "/peminjaman-teknisi" {
			t.Errorf("unexpected folder: %v", got)
		}
		if got := form["useUniqueFileName"]; len(got) != 1 || got[0] != "true" {
			t.Errorf("unexpected useUniqueFileName: %v", got)
		}

		// Signature must be HMAC-SHA1(token+expire, privateKey).
		token := form["token"][0]
		expire := form["expire"][0]
		mac := hmac.New(sha1.New, []byte("private"))
		mac.Write([]byte(token + expire))
		if form["signature"][0] != hex.EncodeToString(mac.Sum(nil)) {
			t.Error("signature does not verify")
		}

		json.NewEncoder(w).Encode(uploadResponse{URL: "https://ik.example/photo.jpg", FileID: "f1", Name: "photo.jpg"})
	})

	url, err := client.Upload(context.Background(), photo, "handover_7.jpg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://ik.example/photo.jpg" {
		t.Errorf("unexpected url %q", url)
	}
}

func TestUploadRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid signature"})
	})

	_, err := client.Upload(context.Background(), []byte{1}, "x.jpg")
	if err == nil {
		t.Fatal("expected error for rejected upload")
	}
}

func TestEnabled(t *testing.T) {
	if New(config.ImageHostConfig{}).Enabled() {
		t.Error("expected disabled without keys")
	}
	if !New(config.ImageHostConfig{PublicKey: "p", PrivateKey: "s"}).Enabled() {
		t.Error("expected enabled with keys")
	}
}
