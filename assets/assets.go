// Package assets embeds the files the viewer and server ship with.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/sound"
)

var (
	//go:embed all:levels
	levelFS embed.FS

	//go:embed sounds.yaml
	soundBank []byte
)

// LevelDir is the directory inside Levels() holding level files.
const LevelDir = "levels"

// Levels exposes the embedded level directory.
func Levels() fs.FS { return levelFS }

// DefaultLevel is the embedded level used when nothing else is configured.
const DefaultLevel = "arena.tmx"

// LoadLevel reads a level file from disk, or the embedded level called name
// when path is empty.
func LoadLevel(path, name string) (*leveldata.Level, error) {
	if path == "" {
		if name == "" {
			name = DefaultLevel
		}
		lvl, err := leveldata.Load(levelFS, LevelDir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("loading embedded level %s: %w", name, err)
		}
		return lvl, nil
	}
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	lvl, err := leveldata.Load(os.DirFS(dir), file)
	if err != nil {
		return nil, fmt.Errorf("loading level %s: %w", path, err)
	}
	return lvl, nil
}

// SoundBank returns the embedded clip bank, or the built-in one if the
// embedded copy does not parse.
func SoundBank() *sound.Bank {
	bank, err := sound.ReadBank(bytes.NewReader(soundBank))
	if err != nil {
		return sound.DefaultBank()
	}
	return bank
}
