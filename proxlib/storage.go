package proxlib

import (
	"io"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// Source parses a stored proxy list into entries. Different feeds
// publish different formats (newline-delimited ip:port text, HTML
// tables), implementations live in the sources package.
type Source interface {
	Name() string
	Parse(r io.Reader) ([]Entry, error)
}

// Store keeps the downloaded proxy list in a single flat file. The
// file is overwritten on each fetch, nothing is appended. Filesystem
// access goes through afero so tests can run against a memory fs.
type Store struct {
	fs   afero.Fs
	path string
}

func NewStore(fs afero.Fs, path string) *Store {
	return &Store{
		fs:   fs,
		path: path,
	}
}

// Path returns a path to the proxy list file.
func (s *Store) Path() string {
	return s.path
}

// SaveRaw writes a response body to the file verbatim, replacing
// whatever was there before.
func (s *Store) SaveRaw(r io.Reader) error {
	file, err := s.fs.Create(s.path)
	if err != nil {
		return errors.Annotatef(err, "cannot create file %s", s.path)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return errors.Annotatef(err, "cannot write to file %s", s.path)
	}

	if err := file.Close(); err != nil {
		return errors.Annotatef(err, "cannot close file %s", s.path)
	}

	return nil
}

// ReadEntries parses the stored file with the given source. A missing
// or unreadable file is a recoverable condition: callers get an empty
// slice along with the error and are expected to degrade, not to stop.
func (s *Store) ReadEntries(source Source) ([]Entry, error) {
	file, err := s.fs.Open(s.path)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot open proxy list %s", s.path)
	}

	defer file.Close()

	entries, err := source.Parse(file)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot parse proxy list %s", s.path)
	}

	return entries, nil
}
