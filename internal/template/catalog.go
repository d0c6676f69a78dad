package template

import (
	"fmt"
	"sort"
)

// Catalog 是注入式的模板目录：构造后只读，解析器通过它查找模板，
// 测试可以替换成任意小目录。
type Catalog struct {
	byID  map[string]*Config
	order []string
}

// NewCatalog 从模板列表构建目录。
// 模板 id 或模板内 Section id 重复视为目录数据错误。
func NewCatalog(configs []Config) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Config, len(configs))}
	for i := range configs {
		cfg := configs[i]
		if cfg.ID == "" {
			return nil, fmt.Errorf("template at index %d has empty id", i)
		}
		if _, dup := c.byID[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", cfg.ID)
		}
		seen := make(map[string]bool, len(cfg.Layout.Sections))
		for _, sec := range cfg.Layout.Sections {
			if seen[sec.ID] {
				return nil, fmt.Errorf("template %q: duplicate section id %q", cfg.ID, sec.ID)
			}
			seen[sec.ID] = true
		}
		c.byID[cfg.ID] = &cfg
		c.order = append(c.order, cfg.ID)
	}
	return c, nil
}

// MustNewCatalog 包装 NewCatalog，内置目录构建失败直接 panic。
func MustNewCatalog(configs []Config) *Catalog {
	c, err := NewCatalog(configs)
	if err != nil {
		panic(err)
	}
	return c
}

// Get 按 id 查找模板；不存在返回 false。
func (c *Catalog) Get(id string) (*Config, bool) {
	cfg, ok := c.byID[id]
	return cfg, ok
}

// List 按注册顺序返回全部模板。
func (c *Catalog) List() []*Config {
	out := make([]*Config, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// IDs 返回排好序的模板 id 列表，主要用于诊断信息。
func (c *Catalog) IDs() []string {
	out := append([]string(nil), c.order...)
	sort.Strings(out)
	return out
}
