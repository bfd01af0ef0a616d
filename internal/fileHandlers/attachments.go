package fileHandlers

import (
	"chatclone-backend/internal/models"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

var mutex sync.Mutex

const attachmentsFolder = "attachments"

// HandleAttachment stores an uploaded form file under a content-hash name
// and returns the attachment record to embed into a message. Uploading the
// same bytes twice reuses the existing file.
func HandleAttachment(r *http.Request) (models.Attachment, error) {
	formFile, header, err := r.FormFile("file")
	if err != nil {
		return models.Attachment{}, err
	}
	defer func() {
		err := formFile.Close()
		if err != nil {
			fmt.Println(err)
		}
	}()

	inputBytes, err := io.ReadAll(formFile)
	if err != nil {
		return models.Attachment{}, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(inputBytes)
	}

	// use the hash for filename
	hash := sha256.Sum256(inputBytes)
	fileName := hex.EncodeToString(hash[:]) + filepath.Ext(header.Filename)

	folderPath := filepath.Join(".", "public", attachmentsFolder)
	fullPath := filepath.Join(folderPath, fileName)

	mutex.Lock()
	defer mutex.Unlock()

	err = os.MkdirAll(folderPath, os.ModePerm)
	if err != nil {
		return models.Attachment{}, err
	}

	_, err = os.Stat(fullPath)
	if os.IsNotExist(err) {
		err = os.WriteFile(fullPath, inputBytes, 0644)
		if err != nil {
			return models.Attachment{}, err
		}
	} else if err != nil {
		return models.Attachment{}, err
	}

	return models.Attachment{
		Name: header.Filename,
		Size: header.Size,
		Url:  fmt.Sprintf("/cdn/%s/%s", attachmentsFolder, fileName),
		Type: contentType,
	}, nil
}
