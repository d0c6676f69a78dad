package resume

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Apply 在数据快照上应用一次字段路径更新，返回新的快照，原快照不变。
// 路径是点号分隔的叶子定位，例如：
//
//	personalInfo.name
//	summary
//	experience.exp-2.position   （按列表项的稳定 id 定位）
//	experience.0.description.1  （数字段按下标定位）
//
// 路径经由 JSON 字段名解析，与前端回传的 fieldPath 一致。
func Apply(data Data, fieldPath string, value any) (Data, error) {
	fieldPath = strings.TrimSpace(fieldPath)
	if fieldPath == "" {
		return Data{}, fmt.Errorf("empty field path")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Data{}, fmt.Errorf("encode resume data: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return Data{}, fmt.Errorf("decode resume data: %w", err)
	}

	updated, err := setNode(tree, strings.Split(fieldPath, "."), value)
	if err != nil {
		return Data{}, fmt.Errorf("apply %q: %w", fieldPath, err)
	}

	out, err := json.Marshal(updated)
	if err != nil {
		return Data{}, fmt.Errorf("encode updated data: %w", err)
	}
	var next Data
	if err := json.Unmarshal(out, &next); err != nil {
		return Data{}, fmt.Errorf("field path %q produced invalid resume data: %w", fieldPath, err)
	}
	return next, nil
}

func setNode(node any, parts []string, value any) (any, error) {
	key := parts[0]
	last := len(parts) == 1

	switch t := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(t)+1)
		for k, v := range t {
			out[k] = v
		}
		if last {
			out[key] = value
			return out, nil
		}
		child, ok := out[key]
		if !ok || child == nil {
			child = map[string]any{}
		}
		next, err := setNode(child, parts[1:], value)
		if err != nil {
			return nil, err
		}
		out[key] = next
		return out, nil

	case []any:
		idx, err := entryIndex(t, key)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(t))
		copy(out, t)
		if last {
			out[idx] = value
			return out, nil
		}
		next, err := setNode(out[idx], parts[1:], value)
		if err != nil {
			return nil, err
		}
		out[idx] = next
		return out, nil

	default:
		return nil, fmt.Errorf("segment %q addresses a scalar", key)
	}
}

// entryIndex 先按稳定 id 匹配列表项，失败再按数字下标。
func entryIndex(list []any, key string) (int, error) {
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := entry["id"].(string); ok && id == key {
			return i, nil
		}
	}
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 || idx >= len(list) {
		return 0, fmt.Errorf("no list entry matches %q", key)
	}
	return idx, nil
}
