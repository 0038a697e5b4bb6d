package service

import "fmt"

// ── 实体 ID 生成 ──
//
// 模型实体 ID 采用确定性的单调计数器而非时间戳/随机数，
// 保证同一输入两次解析产生结构相等的模型（往返比较、测试可复现）。
// 每次解析调用独享一个实例，调用间互不干扰。

// IDGenerator 实体 ID 生成能力（可注入替换）
type IDGenerator interface {
	// Next 生成带前缀的下一个 ID，如 Next("exam") → "exam-003"
	Next(prefix string) string
}

type seqIDGenerator struct {
	n int
}

// NewSequentialIDGenerator 创建单调计数 ID 生成器（从 1 开始）
func NewSequentialIDGenerator() IDGenerator {
	return &seqIDGenerator{}
}

func (g *seqIDGenerator) Next(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%03d", prefix, g.n)
}
