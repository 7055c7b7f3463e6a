package utils

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveBase64Image декодирует картинку вида "data:image/png;base64,..."
// в файл со случайным именем внутри mediaDir и возвращает относительный путь.
// Строка без префикса data: считается уже сохранённым путём и
// возвращается как есть (PATCH без смены картинки).
func SaveBase64Image(data, mediaDir string) (string, error) {
	if !strings.HasPrefix(data, "data:") {
		return data, nil
	}

	parts := strings.SplitN(data, ",", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed data URI")
	}

	ext := ".png"
	switch {
	case strings.Contains(parts[0], "image/jpeg"), strings.Contains(parts[0], "image/jpg"):
		ext = ".jpg"
	case strings.Contains(parts[0], "image/gif"):
		ext = ".gif"
	case strings.Contains(parts[0], "image/webp"):
		ext = ".webp"
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %v", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(mediaDir, name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %v", err)
	}
	return path, nil
}
