package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Uploader pushes an exported file to remote storage. A failed upload is
// the caller's decision to log or escalate; the local file always remains.
type Uploader interface {
	Upload(localPath string) error
}

// DriveUploader uploads files into <root>/<folder>/ on Google Drive using
// a pre-issued OAuth access token from an externally managed token file.
// Token refresh is not handled here.
type DriveUploader struct {
	client    *http.Client
	apiBase   string
	uploadURL string
	tokenPath string
	folder    string
}

// NewDriveUploader builds an uploader targeting the named folder under the
// Drive root. The token file holds the JSON written by an OAuth flow run
// out-of-band.
func NewDriveUploader(tokenPath, folder string) *DriveUploader {
	return &DriveUploader{
		client:    &http.Client{Timeout: 60 * time.Second},
		apiBase:   "https://www.googleapis.com/drive/v3",
		uploadURL: "https://www.googleapis.com/upload/drive/v3/files?uploadType=multipart",
		tokenPath: tokenPath,
		folder:    folder,
	}
}

func (u *DriveUploader) Upload(localPath string) error {
	token, err := u.readToken()
	if err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	folderID, err := u.findOrCreateFolder(token)
	if err != nil {
		return fmt.Errorf("drive: folder %q: %w", u.folder, err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := mw.CreatePart(metaHeader)
	if err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	meta := map[string]any{
		"name":    filepath.Base(localPath),
		"parents": []string{folderID},
	}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", "application/octet-stream")
	filePart, err := mw.CreatePart(fileHeader)
	if err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	if _, err := io.Copy(filePart, f); err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("drive: upload %q: %w", localPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("drive: upload %q: status %d: %s", localPath, resp.StatusCode, snippet)
	}
	return nil
}

func (u *DriveUploader) readToken() (string, error) {
	b, err := os.ReadFile(u.tokenPath)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	var t struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(b, &t); err != nil {
		return "", fmt.Errorf("parse token file %q: %w", u.tokenPath, err)
	}
	if t.AccessToken == "" {
		return "", fmt.Errorf("token file %q has no access_token", u.tokenPath)
	}
	return t.AccessToken, nil
}

// findOrCreateFolder resolves the crawl folder under the Drive root,
// creating it on first use.
func (u *DriveUploader) findOrCreateFolder(token string) (string, error) {
	q := fmt.Sprintf("name='%s' and mimeType='application/vnd.google-apps.folder' and 'root' in parents and trashed=false", u.folder)
	listURL := u.apiBase + "/files?q=" + url.QueryEscape(q) + "&fields=files(id)"

	req, err := http.NewRequest(http.MethodGet, listURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("list status %d", resp.StatusCode)
	}

	var listed struct {
		Files []struct {
			ID string `json:"id"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		return "", err
	}
	if len(listed.Files) > 0 {
		return listed.Files[0].ID, nil
	}

	create := map[string]any{
		"name":     u.folder,
		"mimeType": "application/vnd.google-apps.folder",
	}
	payload, _ := json.Marshal(create)
	req, err = http.NewRequest(http.MethodPost, u.apiBase+"/files", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err = u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("create status %d", resp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ID, nil
}
