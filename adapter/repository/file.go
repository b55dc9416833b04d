package repository

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// seqSuffix 文件存储的 ID 高水位保存在同目录的旁路文件中
const seqSuffix = ".seq"

// writeFileAtomic 先写同目录临时文件再 rename，避免半写的数据文件
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "mkdir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return errors.Wrapf(err, "rename to %s", path)
	}
	return nil
}

// readSeq 读取旁路文件中的 ID 高水位，文件不存在时为 0
func readSeq(path string) (int64, error) {
	b, err := os.ReadFile(path + seqSuffix)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "read seq file")
	}
	next, err := cast.ToInt64E(strings.TrimSpace(string(b)))
	if err != nil || next < 0 {
		return 0, errors.Errorf("invalid seq file content %q", string(b))
	}
	return next, nil
}

func writeSeq(path string, next int64) error {
	return writeFileAtomic(path+seqSuffix, []byte(strconv.FormatInt(next, 10)+"\n"))
}
