package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"placestats/internal/storage/interfaces"
	"strings"
)

// FileBackend stores every slot as its own file under dir. With a
// compressor the files are zstd frames and carry a .zst suffix.
type FileBackend struct {
	dir        string
	compressor interfaces.CompressorInterface
}

func NewFileBackend(dir string, compressor interfaces.CompressorInterface) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create storage dir %s: %w", dir, err)
	}
	return &FileBackend{
		dir:        dir,
		compressor: compressor,
	}, nil
}

func (f *FileBackend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	name := key + ".json"
	if f.compressor != nil {
		name += ".zst"
	}
	return filepath.Join(f.dir, name), nil
}

func (f *FileBackend) Read(key string) ([]byte, error) {
	fileName, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	if f.compressor == nil {
		return data, nil
	}
	return f.compressor.Decompress(data)
}

// Write replaces the slot atomically: tmp file, fsync, rename.
func (f *FileBackend) Write(key string, payload []byte) error {
	fileName, err := f.path(key)
	if err != nil {
		return err
	}

	data := payload
	if f.compressor != nil {
		data, err = f.compressor.Compress(payload)
		if err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileBackend) Delete(key string) error {
	fileName, err := f.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(fileName); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileBackend) Close() error {
	if f.compressor != nil {
		f.compressor.Close()
	}
	return nil
}
