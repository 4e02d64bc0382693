package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// privatePrefix marks attachment references stored in the private files dir.
const privatePrefix = "/private/files/"

// allowedUploadExtensions are the job description formats accepted on upload.
var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// ResumeFile is an attachment reference resolved to a local path.
type ResumeFile struct {
	FileType string
	Path     string
	Name     string
}

type StorageService interface {
	EnsureDirs() error
	SaveFile(file *multipart.FileHeader) (string, error)
	DeleteFile(path string) error

	// ResolveResume maps an attachment reference onto the private or public
	// files dir. Only the base name of the reference is kept; a reference
	// without a usable base name is an ErrInput.
	ResolveResume(reference string) (ResumeFile, error)

	// EnsureLocal downloads a missing file from the object store, when one is
	// configured, into its resolved location.
	EnsureLocal(ctx context.Context, file ResumeFile) error

	IsAllowed(path string) bool
	ReadAllowed(path string) ([]byte, error)
}

type storageService struct {
	uploadPath string
	privateDir string
	publicDir  string
	fetcher    ObjectFetcher
	log        *zap.Logger
}

// NewStorageService wires the upload dir and the two whitelisted resume dirs.
// fetcher may be nil.
func NewStorageService(uploadPath, privateDir, publicDir string, fetcher ObjectFetcher, log *zap.Logger) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		privateDir: privateDir,
		publicDir:  publicDir,
		fetcher:    fetcher,
		log:        log,
	}
}

func (s *storageService) EnsureDirs() error {
	for _, dir := range []string{s.uploadPath, s.privateDir, s.publicDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader) (string, error) {
	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("jd_%s%s", uuid.New().String(), ext))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ResolveResume implements StorageService.
func (s *storageService) ResolveResume(reference string) (ResumeFile, error) {
	dir := s.publicDir
	if strings.HasPrefix(reference, privatePrefix) {
		dir = s.privateDir
	}

	name := filepath.Base(filepath.FromSlash(reference))
	if !isPlainName(name) {
		return ResumeFile{}, fmt.Errorf("%w: invalid resume reference", ErrInput)
	}

	return ResumeFile{
		FileType: strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."),
		Path:     filepath.Join(dir, name),
		Name:     name,
	}, nil
}

// isPlainName reports whether name is a single path element naming a file
// inside its directory.
func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// EnsureLocal implements StorageService.
func (s *storageService) EnsureLocal(ctx context.Context, file ResumeFile) error {
	if s.fetcher == nil {
		return nil
	}

	if !isPlainName(file.Name) || filepath.Base(file.Path) != file.Name {
		return fmt.Errorf("%w: invalid resume name", ErrAccess)
	}

	_, err := os.Stat(file.Path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat resume: %w", err)
	}

	data, err := s.fetcher.Fetch(ctx, file.Name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileNotFound, file.Name, err)
	}

	if err := os.MkdirAll(filepath.Dir(file.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(file.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mirrored resume: %w", err)
	}

	s.log.Debug("📥 resume mirrored from object store", zap.String("name", file.Name))
	return nil
}

// IsAllowed implements StorageService. A directory sharing a name prefix with
// a whitelisted one does not count as inside it.
func (s *storageService) IsAllowed(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	for _, dir := range []string{s.privateDir, s.publicDir} {
		base, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if abs == base || strings.HasPrefix(abs, base+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// ReadAllowed implements StorageService. Errors never carry the path.
func (s *storageService) ReadAllowed(path string) ([]byte, error) {
	if !s.IsAllowed(path) {
		return nil, fmt.Errorf("%w: file is outside the allowed directories", ErrAccess)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("%w: file could not be read", ErrAccess)
	}
	return data, nil
}

// ContentType maps a file name to the type it is served with.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	default:
		return "text/plain"
	}
}
