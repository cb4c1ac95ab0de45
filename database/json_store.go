package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"suito/models"
)

// JSONStore 单个 JSON 文档保存 { dailyRecords, transactions }
// 每次写入先写临时文件再原子替换，读者不会看到写了一半的文件
type JSONStore struct {
	path string
}

// NewJSONStore 创建 JSON 文件存储
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path 数据文件路径
func (s *JSONStore) Path() string {
	return s.path
}

// Load 读取数据文件，文件不存在时返回空账本
func (s *JSONStore) Load(ctx context.Context) (models.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return models.Ledger{}, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.EmptyLedger(), nil
	}
	if err != nil {
		return models.Ledger{}, fmt.Errorf("读取数据文件失败: %w", err)
	}

	var ledger models.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return models.Ledger{}, fmt.Errorf("解析数据文件失败: %w", err)
	}
	ledger.Normalize()
	return ledger, nil
}

// Save 整体覆盖写入数据文件
func (s *JSONStore) Save(ctx context.Context, ledger models.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ledger.Normalize()
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化数据失败: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("同步临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("替换数据文件失败: %w", err)
	}
	return nil
}
