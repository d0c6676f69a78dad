package template

import "strings"

// MergeStyles 将用户覆盖树 overrides 深合并进模板默认样式树 defaults，
// 返回全新的树，两个入参都不会被修改。
// 规则：overrides 中存在的叶子覆盖 defaults 的同路径叶子；
// 若某个键在 overrides 中是整棵子树（例如应用了一套完整配色），
// 则只浅替换该子树内出现的键，兄弟子树不受影响。
func MergeStyles(defaults, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(defaults))
	for k, v := range defaults {
		out[k] = cloneValue(v)
	}
	for k, v := range overrides {
		base, haveBase := out[k].(map[string]any)
		next, isTree := normalizeTree(v)
		if haveBase && isTree {
			out[k] = MergeStyles(base, next)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// SetPath 在树上按点号路径写入一个叶子值，返回新树（写时复制）。
// 路径上的中间节点不存在时自动创建；存在但不是子树时被替换。
func SetPath(tree map[string]any, path string, value any) map[string]any {
	parts := strings.Split(path, ".")
	return setPathParts(tree, parts, value)
}

func setPathParts(tree map[string]any, parts []string, value any) map[string]any {
	out := make(map[string]any, len(tree)+1)
	for k, v := range tree {
		out[k] = v
	}
	key := parts[0]
	if len(parts) == 1 {
		out[key] = value
		return out
	}
	child, _ := normalizeTree(out[key])
	if child == nil {
		child = map[string]any{}
	}
	out[key] = setPathParts(child, parts[1:], value)
	return out
}

// LookupPath 按点号路径读取叶子值。
func LookupPath(tree map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := tree
	for i, key := range parts {
		v, ok := cur[key]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		cur, ok = normalizeTree(v)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// normalizeTree 兼容 JSON 反序列化产生的 map[string]interface{} 子树。
func normalizeTree(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	if tree, ok := normalizeTree(v); ok {
		out := make(map[string]any, len(tree))
		for k, cv := range tree {
			out[k] = cloneValue(cv)
		}
		return out
	}
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		for i, cv := range list {
			out[i] = cloneValue(cv)
		}
		return out
	}
	return v
}

// CloneTree 返回样式树的深拷贝。
func CloneTree(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}
	out, _ := cloneValue(tree).(map[string]any)
	return out
}
