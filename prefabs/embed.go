package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/overworld/ecs/system"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Scripts serves effect scripts to the effect runner.
var Scripts = system.ScriptSourceFunc(LoadScript)

// LoadScript returns an effect script, preferring an on-disk copy under
// prefabs/scripts so edits are picked up without a rebuild.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var PrefabsFS embed.FS

// Load returns a prefab or config file, preferring an on-disk copy under
// prefabs/.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

//go:embed dialogue/*.txt
var dialogueFS embed.FS

// DialogueFS returns the built-in dialogue scripts rooted at their directory.
func DialogueFS() fs.FS {
	sub, err := fs.Sub(dialogueFS, "dialogue")
	if err != nil {
		panic(fmt.Sprintf("prefabs: dialogue fs: %v", err))
	}
	return sub
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

// ScriptName maps a changed file path back to the name effect scripts are
// registered under.
func ScriptName(path string) string {
	return strings.TrimPrefix(cleanScriptPath(filepath.Base(path)), "scripts/")
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
