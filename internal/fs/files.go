package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoPath возвращается, если у буфера ещё нет имени файла.
var ErrNoPath = errors.New("no file path")

// Disk читает и пишет файлы целиком. Нулевое значение готово к работе.
type Disk struct{}

// LoadLines читает файл и делит его на строки. Завершающие \r и \n
// отбрасываются, пустой файл даёт ноль строк.
func (Disk) LoadLines(path string) ([][]byte, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var lines [][]byte
	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		lines = append(lines, bytes.TrimRight(line, "\r"))
	}
	return lines, nil
}

// SaveLines записывает data во временный файл рядом с path и переименовывает
// его поверх path. Права существующего файла сохраняются, новый файл
// получает 0644. Возвращает число записанных байт.
func (Disk) SaveLines(path string, data []byte) (int, error) {
	if path == "" {
		return 0, ErrNoPath
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()

	n, err := tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(mode)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	return n, nil
}
