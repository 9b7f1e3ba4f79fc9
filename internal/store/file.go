package store

import (
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one rendered zone file per zone under a directory.
type FileStore struct {
	Dir string
}

// NewFileStore returns a file store rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{Dir: dir} }

// Load reads the stored snapshot for a zone.
func (s *FileStore) Load(zone string) (string, error) {
	content, err := os.ReadFile(s.path(zone))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}

		return "", err
	}

	return string(content), nil
}

// Save writes the snapshot for a zone, creating the directory if needed.
// The serial is carried in the content's SOA record; the file backend has
// no use for it beyond the interface.
func (s *FileStore) Save(zone string, _ uint32, content string) error {
	if err := os.MkdirAll(s.Dir, 0o750); err != nil {
		return err
	}

	return os.WriteFile(s.path(zone), []byte(content), 0o644)
}

func (s *FileStore) path(zone string) string {
	return filepath.Join(s.Dir, strings.TrimSuffix(zone, ".")+".zone")
}
