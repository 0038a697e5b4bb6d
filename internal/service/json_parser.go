package service

import (
	"encoding/json"
	"fmt"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── JSON 解析器 ──
//
// JSON 文档被信任为已规范：直接结构化反序列化，不做任何推断、
// 合并或再分类。语法错误即硬失败；结构合法但缺字段的文档原样
// 通过，由 Validator 兜底。

// ParseJSON 解析规范 JSON 校历文档
func ParseJSON(content []byte) (*model.Calendar, []string, error) {
	var cal model.Calendar
	if err := json.Unmarshal(content, &cal); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &cal, nil, nil
}
