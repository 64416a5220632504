package paths

import (
	"io"
	"os"
	"path/filepath"
)

const (
	AppDirName     = "mkicon"
	IconsetDirName = "icon.iconset"
	ContainerName  = "icon.icns"
	ICOName        = "icon.ico"
	StandaloneName = "icon_1024.png"
	LogFileName    = "mkicon.log"
	DBFileName     = "mkicon.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// IconsetDir returns the iconset directory inside outDir.
func IconsetDir(outDir string) string {
	return filepath.Join(outDir, IconsetDirName)
}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// CopyFile copies src to dst through a temporary file so dst is never
// left half-written. An existing dst is replaced.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
		return err
	}
	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// DataDir returns the platform-specific data directory for mkicon:
//   - Windows: %APPDATA%\mkicon
//   - Unix:    ~/.config/mkicon
//
// Falls back to os.TempDir()/mkicon if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
