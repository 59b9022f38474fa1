package assets

import (
	"bytes"
	"embed"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *
var assetsFS embed.FS

// SheetFiles lists the sprite sheets in the order prefabs index them.
var SheetFiles = []string{
	"player.png",
	"reaper.png",
	"food.png",
	"chest.png",
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadSheets loads every sheet in SheetFiles. A sheet that is not shipped is
// left nil and reported in missing; the renderer draws its boxes instead.
func LoadSheets() (sheets []*ebiten.Image, missing []string) {
	sheets = make([]*ebiten.Image, len(SheetFiles))
	for i, name := range SheetFiles {
		img, err := LoadImage(name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		sheets[i] = img
	}
	return sheets, missing
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
